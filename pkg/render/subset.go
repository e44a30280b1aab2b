package render

import (
	"strings"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
)

// FieldSubset limits which controls are rendered. An empty subset keeps every
// control.
type FieldSubset struct {
	Fields []media.Field
}

// ParseFieldSubset reads a comma separated field list such as
// "title,copyright". Unknown names are reported together.
func ParseFieldSubset(raw string) (FieldSubset, error) {
	var (
		subset  FieldSubset
		unknown []string
		seen    = map[media.Field]struct{}{}
	)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		field, ok := media.ParseField(token)
		if !ok {
			unknown = append(unknown, token)
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		subset.Fields = append(subset.Fields, field)
	}
	if len(unknown) > 0 {
		return FieldSubset{}, &UnknownFieldsError{Names: unknown}
	}
	return subset, nil
}

// UnknownFieldsError reports field names that are not editable.
type UnknownFieldsError struct {
	Names []string
}

func (e *UnknownFieldsError) Error() string {
	return "render: unknown fields: " + strings.Join(e.Names, ", ")
}

// Empty reports whether the subset keeps every control.
func (s FieldSubset) Empty() bool {
	return len(s.Fields) == 0
}

// ApplySubset removes controls that are not in subset. Control order is
// preserved; the view is left unchanged when subset is empty or view is nil.
func ApplySubset(view *form.View, subset FieldSubset) {
	if view == nil || subset.Empty() {
		return
	}

	keep := make(map[media.Field]struct{}, len(subset.Fields))
	for _, field := range subset.Fields {
		keep[field] = struct{}{}
	}

	filtered := make([]form.Control, 0, len(view.Controls))
	for _, control := range view.Controls {
		if _, ok := keep[control.Field]; ok {
			filtered = append(filtered, control)
		}
	}
	view.Controls = filtered
	if len(view.Controls) == 0 {
		view.Controls = nil
	}
}
