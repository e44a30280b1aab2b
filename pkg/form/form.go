// Package form builds the metadata edit form for a media item.
//
// The form is stateless: Render maps Props to a View of control descriptors
// and Dispatch turns a single user input into a single-field patch delivered
// through Props.OnChange. Renderers (HTML, terminal) only consume View values
// and feed InputEvents back through Dispatch.
package form

import (
	"github.com/goliatone/go-mediaui/pkg/media"
)

// DescriptionRows is the visible height of the description control.
const DescriptionRows = 4

// ControlKind identifies the input widget for a control.
type ControlKind string

const (
	KindText     ControlKind = "text"
	KindTextArea ControlKind = "textarea"
	KindCheckbox ControlKind = "checkbox"
)

// Props is everything the form renders from.
type Props struct {
	Item     media.Item
	Errors   media.FieldErrorSet
	Disabled bool
	OnChange func(media.Patch)
}

// Control describes one rendered input.
type Control struct {
	Field      media.Field `json:"field"`
	Name       string      `json:"name"`
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Kind       ControlKind `json:"kind"`
	Value      string      `json:"value"`
	Checked    bool        `json:"checked"`
	Rows       int         `json:"rows,omitempty"`
	Disabled   bool        `json:"disabled"`
	Error      bool        `json:"error"`
	HelperText string      `json:"helper_text,omitempty"`
}

// View is the rendered form.
type View struct {
	Controls []Control `json:"controls"`
	Disabled bool      `json:"disabled"`
}

type controlSpec struct {
	field media.Field
	label string
	kind  ControlKind
	rows  int
}

var controlSpecs = []controlSpec{
	{field: media.FieldTitle, label: "Title", kind: KindText},
	{field: media.FieldDescription, label: "Description", kind: KindTextArea, rows: DescriptionRows},
	{field: media.FieldDownloadable, label: "Downloadable", kind: KindCheckbox},
	{field: media.FieldCopyright, label: "Copyright", kind: KindText},
}

// Render returns the view for props. Identical props always give identical
// views.
func Render(props Props) View {
	view := View{
		Controls: make([]Control, 0, len(controlSpecs)),
		Disabled: props.Disabled,
	}
	for _, spec := range controlSpecs {
		control := Control{
			Field:    spec.field,
			Name:     string(spec.field),
			ID:       "media-" + string(spec.field),
			Label:    spec.label,
			Kind:     spec.kind,
			Rows:     spec.rows,
			Disabled: props.Disabled,
		}
		switch spec.field {
		case media.FieldTitle:
			control.Value = props.Item.Title
		case media.FieldDescription:
			control.Value = props.Item.Description
		case media.FieldDownloadable:
			control.Checked = props.Item.Downloadable
		case media.FieldCopyright:
			control.Value = props.Item.Copyright
		}
		if props.Errors.Has(spec.field) {
			control.Error = true
			control.HelperText = props.Errors.Text(spec.field)
		}
		view.Controls = append(view.Controls, control)
	}
	return view
}

// Control returns the control bound to field.
func (v View) Control(field media.Field) (Control, bool) {
	for _, control := range v.Controls {
		if control.Field == field {
			return control, true
		}
	}
	return Control{}, false
}

// HasErrors reports whether any control is in error state.
func (v View) HasErrors() bool {
	for _, control := range v.Controls {
		if control.Error {
			return true
		}
	}
	return false
}
