package render

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// MethodOverrideField is the hidden input carrying the real HTTP verb on
// browser POST submissions.
const MethodOverrideField = "_method"

// IntentField names the submit button value telling save and cancel apart.
const (
	IntentField  = "intent"
	IntentSave   = "save"
	IntentCancel = "cancel"
)

// HiddenField represents a hidden form input emitted alongside the visible
// controls. Use the helpers (CSRFToken, MethodOverride) to add common fields
// without repeating boilerplate.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name to match their backend expectations (for example,
// "_csrf" or "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MethodOverride returns the _method field for verbs browsers cannot submit
// and a zero field for GET/POST.
func MethodOverride(method string) HiddenField {
	verb := strings.ToUpper(strings.TrimSpace(method))
	switch verb {
	case "", http.MethodGet, http.MethodPost:
		return HiddenField{}
	default:
		return Hidden(MethodOverrideField, verb)
	}
}

// FormMethod returns the method attribute a browser form should use for the
// requested verb.
func FormMethod(method string) string {
	if strings.EqualFold(strings.TrimSpace(method), http.MethodGet) {
		return "get"
	}
	return "post"
}

// RequestMethod resolves the effective verb of a submission, honouring the
// _method override on POST requests.
func RequestMethod(r *http.Request) string {
	if r == nil {
		return ""
	}
	if r.Method != http.MethodPost {
		return r.Method
	}
	if override := strings.ToUpper(strings.TrimSpace(r.PostFormValue(MethodOverrideField))); override != "" {
		return override
	}
	return r.Method
}

// RequestIntent returns the submitted intent, defaulting to IntentSave.
func RequestIntent(r *http.Request) string {
	if r == nil {
		return IntentSave
	}
	if strings.EqualFold(strings.TrimSpace(r.PostFormValue(IntentField)), IntentCancel) {
		return IntentCancel
	}
	return IntentSave
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}
