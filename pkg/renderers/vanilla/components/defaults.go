package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-mediaui/pkg/form"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry with a component for every control
// kind the metadata form produces.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(string(form.KindText), Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "input.tmpl"),
	})
	registry.MustRegister(string(form.KindTextArea), Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "textarea.tmpl"),
	})
	registry.MustRegister(string(form.KindCheckbox), Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "checkbox.tmpl"),
	})

	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, control form.Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		rendered, err := data.Template.RenderTemplate(templateName, map[string]any{
			"control":   control,
			"helper_id": HelperID(control),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// HelperID is the id of the element carrying a control's helper text.
func HelperID(control form.Control) string {
	if control.ID == "" {
		return ""
	}
	return control.ID + "-helper"
}
