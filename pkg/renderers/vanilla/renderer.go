// Package vanilla renders the metadata form as plain HTML with the embedded
// pongo2 templates.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/render"
	rendertemplate "github.com/goliatone/go-mediaui/pkg/render/template"
	gotemplate "github.com/goliatone/go-mediaui/pkg/render/template/gotemplate"
	"github.com/goliatone/go-mediaui/pkg/renderers/vanilla/components"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default control components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName(Name),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, registry: cfg.registry}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form element for view. Verbs browsers cannot submit are
// sent as POST with a hidden _method input.
func (r *Renderer) Render(_ context.Context, view form.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	render.ApplySubset(&view, options.Fields)
	render.LocalizeView(&view, options)

	controls := newComponentRenderer(r.templates, r.registry)
	fields := make([]string, 0, len(view.Controls))
	for _, control := range view.Controls {
		markup, err := controls.render(control)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, markup)
	}

	hidden := render.SortedHiddenFields(render.MergeHiddenFields(options.Hidden, render.MethodOverride(options.Method)))

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"classes":      chromeClasses(),
		"action":       options.Action,
		"method":       render.FormMethod(options.Method),
		"hidden":       hiddenFieldData(hidden),
		"form_errors":  options.FormErrors,
		"fields":       fields,
		"stylesheets":  controls.stylesheets(),
		"disabled":     view.Disabled,
		"cancel":       options.Cancel,
		"cancel_label": render.Translate(options, "media.form.cancel", "Cancel"),
		"submit_label": valueOr(options.SubmitLabel, render.Translate(options, "media.form.save", "Save")),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
