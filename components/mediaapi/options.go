package mediaapi

import (
	"net/http"

	"github.com/charmbracelet/log"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Validate  bool
	Guard     GuardFunc
	Logger    *log.Logger

	Store *Store
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api",
		Validate:  true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithValidation toggles OpenAPI validation of update requests.
func WithValidation(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validate = enabled
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *log.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithStore serves the given store instead of a fresh copy of the seed data.
func WithStore(store *Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}
