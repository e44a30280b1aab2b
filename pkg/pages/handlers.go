package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/routes"
	"github.com/goliatone/go-mediaui/pkg/sanitize"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	items, err := s.backend.ListMedia(r.Context())
	if err != nil {
		s.fail(w, r, "media list", err)
		return
	}

	list := make([]map[string]string, 0, len(items))
	for _, item := range items {
		list = append(list, map[string]string{
			"title": sanitize.PlainText(item.Title),
			"href":  routes.MediaViewPath(item.ID),
		})
	}
	s.render(w, r, http.StatusOK, "index", map[string]any{"items": list})
}

func (s *Server) mediaView(w http.ResponseWriter, r *http.Request) {
	pk := r.PathValue(routes.PathParam)
	item, err := s.backend.GetMedia(r.Context(), pk)
	if err != nil {
		s.fail(w, r, "media item", err)
		return
	}
	if item.ID == "" {
		item.ID = pk
	}

	jsonld, err := s.mediaJSONLD(item, absoluteURL(r, routes.MediaViewPath(item.ID)))
	if err != nil {
		s.logger.Error("encode json-ld", "id", item.ID, "err", err)
		jsonld = ""
	}

	title := sanitize.PlainText(item.Title)
	view := map[string]any{
		"title":        title,
		"description":  sanitize.HTML(item.Description),
		"downloadable": item.Downloadable,
		"copyright":    sanitize.PlainText(item.Copyright),
		"thumbnail":    thumbnail(item),
	}
	if item.Channel != nil && item.Channel.ID != "" {
		view["channel"] = channelLabel(item.Channel)
		view["channel_href"] = routes.HrefFor(routes.ChannelView, item.Channel.ID)
	}

	s.render(w, r, http.StatusOK, "media_view", map[string]any{
		"title":          title,
		"item":           view,
		"jsonld":         jsonld,
		"can_edit":       s.canEdit(r.Context(), item),
		"edit_href":      routes.MediaEditPath(item.ID),
		"analytics_href": routes.HrefFor(routes.MediaAnalytics, item.ID),
	})
}

func (s *Server) mediaAnalytics(w http.ResponseWriter, r *http.Request) {
	pk := r.PathValue(routes.PathParam)
	item, err := s.backend.GetMedia(r.Context(), pk)
	if err != nil {
		s.fail(w, r, "media item", err)
		return
	}
	s.render(w, r, http.StatusOK, "analytics", map[string]any{
		"title":      "Analytics",
		"item_title": sanitize.PlainText(item.Title),
		"view_href":  routes.MediaViewPath(pk),
	})
}

func (s *Server) channelView(w http.ResponseWriter, r *http.Request) {
	channel, err := s.backend.GetChannel(r.Context(), r.PathValue(routes.PathParam))
	if err != nil {
		s.fail(w, r, "channel", err)
		return
	}
	title := sanitize.PlainText(channel.Title)
	s.render(w, r, http.StatusOK, "channel", map[string]any{
		"title": title,
		"channel": map[string]string{
			"title":       title,
			"description": sanitize.PlainText(channel.Description),
		},
		"media": s.mediaLinks(r.Context(), channel.MediaIDs),
	})
}

func (s *Server) playlistView(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.backend.GetPlaylist(r.Context(), r.PathValue(routes.PathParam))
	if err != nil {
		s.fail(w, r, "playlist", err)
		return
	}
	title := sanitize.PlainText(playlist.Title)
	data := map[string]any{
		"title":    title,
		"playlist": map[string]string{"title": title},
		"media":    s.mediaLinks(r.Context(), playlist.MediaIDs),
	}
	if playlist.Channel != nil && playlist.Channel.ID != "" {
		data["playlist"] = map[string]string{"title": title, "channel": channelLabel(playlist.Channel)}
		data["channel_href"] = routes.HrefFor(routes.ChannelView, playlist.Channel.ID)
	}
	s.render(w, r, http.StatusOK, "playlist", data)
}

// canEdit asks the ownership check, treating lookup failures as a refusal.
func (s *Server) canEdit(ctx context.Context, item media.Item) bool {
	allowed, err := s.ownership.CanEdit(ctx, item.Channel)
	if err != nil {
		s.logger.Warn("ownership lookup failed", "id", item.ID, "err", err)
		return false
	}
	return allowed
}

// mediaLinks labels ids with item titles. Ids missing from the listing keep
// a generic label.
func (s *Server) mediaLinks(ctx context.Context, ids []string) []map[string]string {
	if len(ids) == 0 {
		return nil
	}
	titles := make(map[string]string)
	if items, err := s.backend.ListMedia(ctx); err != nil {
		s.logger.Warn("list media for labels", "err", err)
	} else {
		for _, item := range items {
			titles[item.ID] = sanitize.PlainText(item.Title)
		}
	}

	links := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		label := titles[id]
		if label == "" {
			label = "Media " + id
		}
		links = append(links, map[string]string{"label": label, "href": routes.MediaViewPath(id)})
	}
	return links
}

// mediaJSONLD describes item as a schema.org VideoObject. encoding/json
// escapes <, > and &, so the result is safe inside a script element.
func (s *Server) mediaJSONLD(item media.Item, canonical string) (string, error) {
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "VideoObject",
		"name":        sanitize.PlainText(item.Title),
		"description": sanitize.PlainText(item.Description),
		"url":         canonical,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  s.site.Title,
		},
	}
	if thumb := thumbnail(item); thumb != "" {
		doc["thumbnailUrl"] = thumb
	}
	var seconds int64
	if raw, ok := item.Extra["duration"]; ok && json.Unmarshal(raw, &seconds) == nil && seconds > 0 {
		doc["duration"] = isoDuration(seconds)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// thumbnail returns the item's thumbnail url when it is a relative path or
// an http(s) url.
func thumbnail(item media.Item) string {
	raw, ok := item.Extra["thumbnail"]
	if !ok {
		return ""
	}
	var href string
	if err := json.Unmarshal(raw, &href); err != nil {
		return ""
	}
	href = strings.TrimSpace(href)
	switch {
	case strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"):
		return href
	case strings.HasPrefix(href, "https://"), strings.HasPrefix(href, "http://"):
		return href
	default:
		return ""
	}
}

// isoDuration formats seconds as an ISO 8601 duration ("PT31M").
func isoDuration(seconds int64) string {
	h, m, sec := seconds/3600, seconds/60%60, seconds%60
	out := "PT"
	if h > 0 {
		out += fmt.Sprintf("%dH", h)
	}
	if m > 0 {
		out += fmt.Sprintf("%dM", m)
	}
	if sec > 0 || out == "PT" {
		out += fmt.Sprintf("%dS", sec)
	}
	return out
}

func channelLabel(ref *media.ChannelRef) string {
	if title := sanitize.PlainText(ref.Title); title != "" {
		return title
	}
	return ref.ID
}

func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
