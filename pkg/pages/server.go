package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/apiclient"
	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/flash"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/ownership"
	"github.com/goliatone/go-mediaui/pkg/render"
	gotemplate "github.com/goliatone/go-mediaui/pkg/render/template/gotemplate"
	"github.com/goliatone/go-mediaui/pkg/renderers/vanilla"
	"github.com/goliatone/go-mediaui/pkg/routes"
)

// AssetsPrefix is where the embedded stylesheet is served.
const AssetsPrefix = "/assets/"

// Backend is the media API as seen by the pages. *apiclient.Client
// satisfies it.
type Backend interface {
	ListMedia(ctx context.Context) ([]media.Item, error)
	GetMedia(ctx context.Context, id string) (media.Item, error)
	PatchMedia(ctx context.Context, item media.Item) (media.Item, error)
	GetChannel(ctx context.Context, id string) (media.Channel, error)
	GetPlaylist(ctx context.Context, id string) (media.Playlist, error)
	GetProfile(ctx context.Context) (media.Profile, error)
}

var _ Backend = (*apiclient.Client)(nil)

// Server renders the pages of the front end.
type Server struct {
	backend   Backend
	logger    *log.Logger
	site      Site
	sessions  *flash.Sessions
	ownership edit.OwnershipChecker
	forms     render.Renderer
	templates *gotemplate.Engine
	csrf      *CSRF
	mounts    []mount
}

// New builds a server reading from backend.
func New(backend Backend, options ...Option) (*Server, error) {
	if backend == nil {
		return nil, errors.New("pages: backend is required")
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.sessions == nil {
		cfg.sessions = flash.NewSessions(flash.NewStore(), flash.DefaultCookieName)
	}
	if cfg.ownership == nil {
		cfg.ownership = ownership.ProfileChecker{Profiles: backend}
	}
	if cfg.forms == nil {
		forms, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("pages: form renderer: %w", err)
		}
		cfg.forms = forms
	}

	gtag, err := json.Marshal(cfg.site.GtagID)
	if err != nil {
		return nil, fmt.Errorf("pages: encode gtag id: %w", err)
	}

	engineOpts := []gotemplate.Option{
		gotemplate.WithName("pages"),
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithDebug(cfg.debug),
		gotemplate.WithGlobalData(map[string]any{
			"site": map[string]string{
				"title":   cfg.site.Title,
				"gtag_id": cfg.site.GtagID,
			},
			"gtag_json":  string(gtag),
			"stylesheet": AssetsPrefix + vanilla.StylesheetName,
			"nav":        navigation(),
		}),
	}
	if cfg.templatesDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templatesDir))
	}
	templates, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("pages: templates: %w", err)
	}

	return &Server{
		backend:   backend,
		logger:    cfg.logger,
		site:      cfg.site,
		sessions:  cfg.sessions,
		ownership: cfg.ownership,
		forms:     cfg.forms,
		templates: templates,
		csrf:      NewCSRF(cfg.csrfSecret),
		mounts:    cfg.mounts,
	}, nil
}

// Sessions returns the cookie sessions holding one-shot messages.
func (s *Server) Sessions() *flash.Sessions {
	return s.sessions
}

// Handler returns the routed pages wrapped in request logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if missing := routes.Register(mux, s.handlers()); len(missing) > 0 {
		s.logger.Warn("routes without handler", "routes", missing)
	}
	mux.Handle("GET "+AssetsPrefix, http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))
	for _, m := range s.mounts {
		mux.Handle(m.pattern, m.handler)
	}
	return Chain(mux, RequestLogger(s.logger), Recover(s.logger))
}

func (s *Server) handlers() routes.Handlers {
	return routes.Handlers{
		routes.Index:          http.HandlerFunc(s.index),
		routes.MediaView:      http.HandlerFunc(s.mediaView),
		routes.MediaEdit:      http.HandlerFunc(s.mediaEdit),
		routes.MediaAnalytics: http.HandlerFunc(s.mediaAnalytics),
		routes.Upload:         s.static("upload", "Upload"),
		routes.ChannelView:    http.HandlerFunc(s.channelView),
		routes.PlaylistView:   http.HandlerFunc(s.playlistView),
		routes.About:          s.static("about", "About"),
		routes.Health: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("ok"))
		}),
	}
}

// render executes the named page template. The pending one-shot message of
// the session is consumed here, so it shows on exactly one page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	if message, ok := s.sessions.Take(r); ok {
		data["flash"] = message
	}

	out, err := s.templates.RenderTemplate(name, data)
	if err != nil {
		s.logger.Error("render page", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Debug("write page", "template", name, "err", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", map[string]any{
		"title":     http.StatusText(status),
		"heading":   http.StatusText(status),
		"message":   message,
		"home_href": routes.Href(routes.Index),
	})
}

// fail renders the page for a backend fetch error: 404 when the resource
// does not exist, 502 otherwise.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, apiclient.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound, fmt.Sprintf("The %s could not be found.", what))
		return
	}
	s.logger.Error("backend request failed", "resource", what, "path", r.URL.Path, "err", err)
	s.renderError(w, r, http.StatusBadGateway, fmt.Sprintf("The %s could not be loaded. Please try again.", what))
}

func (s *Server) static(name, title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, map[string]any{"title": title})
	})
}

func navigation() []map[string]string {
	return []map[string]string{
		{"label": "Media", "href": routes.Href(routes.Index)},
		{"label": "Upload", "href": routes.Href(routes.Upload)},
		{"label": "About", "href": routes.Href(routes.About)},
	}
}
