// Package mediaui is the convenience entry point of the module: it wires the
// media API client into the page server and exposes the embedded templates
// and stylesheet for callers that build their own pages.
package mediaui

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-mediaui/pkg/apiclient"
	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/pages"
	"github.com/goliatone/go-mediaui/pkg/render"
	"github.com/goliatone/go-mediaui/pkg/renderers/tui"
	"github.com/goliatone/go-mediaui/pkg/renderers/vanilla"
)

// RenderOptions describes per-request overrides for form renderers.
type RenderOptions = render.RenderOptions

// FieldSubset restricts rendering to some editable fields.
type FieldSubset = render.FieldSubset

// NewServer builds the page server for the media API at baseURL.
func NewServer(baseURL string, clientOptions []apiclient.Option, options ...pages.Option) (*pages.Server, error) {
	client, err := apiclient.New(baseURL, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("mediaui: %w", err)
	}
	return pages.New(client, options...)
}

// Renderers returns a registry holding the HTML renderer and the terminal
// renderer configured with tuiOptions.
func Renderers(tuiOptions ...tui.Option) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("mediaui: %w", err)
	}
	terminal, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, fmt.Errorf("mediaui: %w", err)
	}
	return render.NewRegistry(html, terminal)
}

// RenderForm renders the edit form of item with the renderer registered
// under name.
func RenderForm(ctx context.Context, registry *render.Registry, name string, item media.Item, errs media.FieldErrorSet, opts RenderOptions) ([]byte, error) {
	renderer, err := registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form.Render(form.Props{Item: item, Errors: errs}), opts)
}

// RenderEditForm renders the HTML edit form of item.
func RenderEditForm(ctx context.Context, item media.Item, errs media.FieldErrorSet, opts RenderOptions) ([]byte, error) {
	registry, err := render.NewRegistry()
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("mediaui: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	return RenderForm(ctx, registry, vanilla.Name, item, errs, opts)
}

// EmbeddedTemplates exposes the form component templates.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// PageTemplates exposes the page layouts.
func PageTemplates() fs.FS {
	return pages.TemplatesFS()
}

// AssetsFS exposes the stylesheet served under /assets/.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
