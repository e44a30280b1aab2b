package mediaapi

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the API root under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the API under basePath on mux and returns the
// mount path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the API using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("mediaapi: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return "", fmt.Errorf("mediaapi: build handler: %w", err)
	}

	root := mountPath(basePath, opts.RoutePath)
	prefix := strings.TrimRight(root, "/")
	if prefix == "" {
		mux.Handle("/", handler)
		return "/", nil
	}
	mux.Handle(prefix+"/", http.StripPrefix(prefix, handler))
	return prefix, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
