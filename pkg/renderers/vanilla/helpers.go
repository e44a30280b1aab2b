package vanilla

import (
	"strings"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/render"
)

func fieldClass(control form.Control) string {
	classes := []string{string(ClassField)}
	if control.Kind == form.KindCheckbox {
		classes = append(classes, string(ClassField)+ModifierCheckbox)
	}
	if control.Error {
		classes = append(classes, string(ClassField)+ModifierError)
	}
	return strings.Join(classes, " ")
}

func hiddenFieldData(fields []render.HiddenField) []map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
