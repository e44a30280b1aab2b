package mediaapi

import "net/http"

// Component bundles the API handler, its store and routing helpers.
type Component struct {
	opts Options
}

// New constructs a component. Without WithStore it gets its own copy of the
// seed data, so edits made through it are visible to every handler it builds.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	if opts.Store == nil {
		store, err := DefaultStore()
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}
	return &Component{opts: opts}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Store returns the data served by the component.
func (c *Component) Store() *Store {
	if c == nil {
		return nil
	}
	return c.opts.Store
}

// Handler returns the API handler rooted at "/".
func (c *Component) Handler() (http.Handler, error) {
	return HandlerWithOptions(c.Options())
}

// RegisterRoutes registers the API under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}
