// Package routes is the page route table of the front end.
package routes

import (
	"net/http"
	"net/url"
	"strings"
)

// Name identifies a page.
type Name string

const (
	Index          Name = "index"
	MediaView      Name = "media.view"
	MediaEdit      Name = "media.edit"
	MediaAnalytics Name = "media.analytics"
	Upload         Name = "upload"
	ChannelView    Name = "channel.view"
	PlaylistView   Name = "playlist.view"
	About          Name = "about"
	Health         Name = "healthz"
)

// PathParam is the wildcard name used by routes that take a primary key.
const PathParam = "pk"

// Route is one entry of the table. Pattern uses net/http ServeMux syntax
// without the method prefix.
type Route struct {
	Name    Name
	Pattern string
	Methods []string
}

var table = []Route{
	{Name: Index, Pattern: "/{$}", Methods: []string{http.MethodGet}},
	{Name: MediaView, Pattern: "/media/{pk}", Methods: []string{http.MethodGet}},
	{Name: MediaEdit, Pattern: "/media/{pk}/edit", Methods: []string{http.MethodGet, http.MethodPost}},
	{Name: MediaAnalytics, Pattern: "/media/{pk}/analytics", Methods: []string{http.MethodGet}},
	{Name: Upload, Pattern: "/upload", Methods: []string{http.MethodGet}},
	{Name: ChannelView, Pattern: "/channels/{pk}", Methods: []string{http.MethodGet}},
	{Name: PlaylistView, Pattern: "/playlists/{pk}", Methods: []string{http.MethodGet}},
	{Name: About, Pattern: "/about", Methods: []string{http.MethodGet}},
	{Name: Health, Pattern: "/healthz", Methods: []string{http.MethodGet}},
}

// Table returns a copy of every route in registration order.
func Table() []Route {
	out := make([]Route, len(table))
	for i, route := range table {
		route.Methods = append([]string(nil), route.Methods...)
		out[i] = route
	}
	return out
}

// Lookup returns the route registered under name.
func Lookup(name Name) (Route, bool) {
	for _, route := range table {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}

// Mux is the subset of *http.ServeMux the route table is mounted on.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Handlers maps route names to their handlers.
type Handlers map[Name]http.Handler

// Register mounts every route that has a handler, one pattern per method
// ("GET /media/{pk}"). Routes without a handler are skipped and returned.
func Register(mux Mux, handlers Handlers) []Name {
	var missing []Name
	for _, route := range table {
		handler, ok := handlers[route.Name]
		if !ok || handler == nil {
			missing = append(missing, route.Name)
			continue
		}
		for _, method := range route.Methods {
			mux.Handle(method+" "+route.Pattern, handler)
		}
	}
	return missing
}

// Href builds the path of a parameterless route.
func Href(name Name) string {
	route, ok := Lookup(name)
	if !ok {
		return ""
	}
	return strings.TrimSuffix(route.Pattern, "{$}")
}

// HrefFor builds the path of a route that takes a primary key.
func HrefFor(name Name, pk string) string {
	route, ok := Lookup(name)
	if !ok {
		return ""
	}
	return strings.Replace(route.Pattern, "{"+PathParam+"}", url.PathEscape(pk), 1)
}

// MediaViewPath is the canonical view route of a media item.
func MediaViewPath(id string) string {
	return HrefFor(MediaView, id)
}

// MediaEditPath is the edit route of a media item.
func MediaEditPath(id string) string {
	return HrefFor(MediaEdit, id)
}
