package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/render/template"
	"github.com/goliatone/go-mediaui/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry

	used []string
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
	}
}

func (r *componentRenderer) render(control form.Control) (string, error) {
	name := string(control.Kind)
	if name == "" {
		name = string(form.KindText)
	}

	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", name, control.Field)
	}

	var markup bytes.Buffer
	if err := descriptor.Renderer(&markup, control, components.ComponentData{Template: r.templates}); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", name, control.Field, err)
	}
	r.used = append(r.used, name)

	return buildFieldMarkup(control, strings.TrimSpace(markup.String())), nil
}

func (r *componentRenderer) stylesheets() []string {
	return r.registry.Stylesheets(r.used)
}

// buildFieldMarkup wraps a control with its label and helper text. Checkboxes
// put the control before the label.
func buildFieldMarkup(control form.Control, markup string) string {
	var builder strings.Builder
	builder.Grow(len(markup) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(fieldClass(control))
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(string(control.Field)))
	builder.WriteString(`">`)

	label := `<label for="` + html.EscapeString(control.ID) + `">` + html.EscapeString(control.Label) + `</label>`
	if control.Kind == form.KindCheckbox {
		builder.WriteString(markup)
		builder.WriteString(label)
	} else {
		builder.WriteString(label)
		builder.WriteString(markup)
	}

	if control.HelperText != "" {
		builder.WriteString(`<p id="`)
		builder.WriteString(html.EscapeString(components.HelperID(control)))
		builder.WriteString(`" class="`)
		builder.WriteString(string(ClassHelper))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(control.HelperText))
		builder.WriteString(`</p>`)
	}

	builder.WriteString(`</div>`)
	return builder.String()
}
