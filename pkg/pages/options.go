package pages

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/flash"
	"github.com/goliatone/go-mediaui/pkg/render"
)

// Site is the chrome shared by every page.
type Site struct {
	Title string
	// GtagID enables the analytics tag when set.
	GtagID string
}

// Option configures a Server.
type Option func(*config)

type config struct {
	logger       *log.Logger
	site         Site
	sessions     *flash.Sessions
	ownership    edit.OwnershipChecker
	forms        render.Renderer
	templatesDir string
	debug        bool
	csrfSecret   []byte
	mounts       []mount
}

type mount struct {
	pattern string
	handler http.Handler
}

// WithLogger sets the logger used for requests and backend failures.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSite sets the page chrome.
func WithSite(site Site) Option {
	return func(cfg *config) {
		site.Title = strings.TrimSpace(site.Title)
		site.GtagID = strings.TrimSpace(site.GtagID)
		if site.Title == "" {
			site.Title = cfg.site.Title
		}
		cfg.site = site
	}
}

// WithSessions sets the cookie sessions holding one-shot messages.
func WithSessions(sessions *flash.Sessions) Option {
	return func(cfg *config) {
		if sessions != nil {
			cfg.sessions = sessions
		}
	}
}

// WithOwnership overrides the ownership check. The default asks the backend
// for the current profile.
func WithOwnership(checker edit.OwnershipChecker) Option {
	return func(cfg *config) {
		if checker != nil {
			cfg.ownership = checker
		}
	}
}

// WithFormRenderer overrides the renderer drawing the edit form.
func WithFormRenderer(renderer render.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.forms = renderer
		}
	}
}

// WithTemplatesDir loads page templates from dir before the embedded set.
// With debug on, templates are re-read on every render.
func WithTemplatesDir(dir string, debug bool) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
		cfg.debug = debug
	}
}

// WithCSRFSecret sets the key signing form tokens. Without it a random key
// is generated per process.
func WithCSRFSecret(secret []byte) Option {
	return func(cfg *config) {
		cfg.csrfSecret = append([]byte(nil), secret...)
	}
}

// WithMount serves handler under pattern next to the pages.
func WithMount(pattern string, handler http.Handler) Option {
	return func(cfg *config) {
		if pattern == "" || handler == nil {
			return
		}
		cfg.mounts = append(cfg.mounts, mount{pattern: pattern, handler: handler})
	}
}

func defaultConfig() config {
	return config{
		logger: log.New(io.Discard),
		site:   Site{Title: "Media"},
	}
}
