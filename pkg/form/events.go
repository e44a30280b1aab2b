package form

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-mediaui/pkg/media"
)

// InputEvent is one user edit of one control. Text carries the new value of
// text controls; Checked carries the new state of the checkbox.
type InputEvent struct {
	Field   media.Field
	Text    string
	Checked bool
}

// TextInput builds an edit event for a text control.
func TextInput(field media.Field, value string) InputEvent {
	return InputEvent{Field: field, Text: value}
}

// CheckboxInput builds an edit event for the checkbox.
func CheckboxInput(field media.Field, checked bool) InputEvent {
	return InputEvent{Field: field, Checked: checked}
}

// Patch converts the event into a single-field patch. Events for unknown
// fields give false.
func (e InputEvent) Patch() (media.Patch, bool) {
	switch e.Field {
	case media.FieldTitle:
		return media.PatchTitle(e.Text), true
	case media.FieldDescription:
		return media.PatchDescription(e.Text), true
	case media.FieldDownloadable:
		return media.PatchDownloadable(e.Checked), true
	case media.FieldCopyright:
		return media.PatchCopyright(e.Text), true
	default:
		return media.Patch{}, false
	}
}

// Dispatch delivers event to props.OnChange as one single-field patch. It
// reports whether OnChange was called; disabled forms never call it.
func Dispatch(props Props, event InputEvent) bool {
	if props.Disabled || props.OnChange == nil {
		return false
	}
	patch, ok := event.Patch()
	if !ok {
		return false
	}
	props.OnChange(patch)
	return true
}

// EventsFromValues compares a submitted HTML form against view and returns an
// event for every control whose value changed, in control order. Checkboxes
// are absent from a submission when unchecked.
func EventsFromValues(view View, values url.Values) []InputEvent {
	var events []InputEvent
	for _, control := range view.Controls {
		switch control.Kind {
		case KindCheckbox:
			checked := checkboxValue(values, control.Name)
			if checked != control.Checked {
				events = append(events, CheckboxInput(control.Field, checked))
			}
		default:
			if _, present := values[control.Name]; !present {
				continue
			}
			value := normalizeNewlines(values.Get(control.Name))
			if value != normalizeNewlines(control.Value) {
				events = append(events, TextInput(control.Field, value))
			}
		}
	}
	return events
}

func checkboxValue(values url.Values, name string) bool {
	raw, present := values[name]
	if !present || len(raw) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(raw[len(raw)-1])) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

// Browsers submit textarea content with CRLF line endings.
func normalizeNewlines(value string) string {
	return strings.ReplaceAll(value, "\r\n", "\n")
}
