package media

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldErrorSet maps editable fields to the messages reported for them.
type FieldErrorSet map[Field][]string

// Has reports whether the field has at least one message.
func (s FieldErrorSet) Has(field Field) bool {
	return len(s[field]) > 0
}

// Messages returns a copy of the messages for the field.
func (s FieldErrorSet) Messages(field Field) []string {
	if len(s[field]) == 0 {
		return nil
	}
	return append([]string(nil), s[field]...)
}

// Text joins the field's messages with a single space.
func (s FieldErrorSet) Text(field Field) string {
	return strings.Join(s[field], " ")
}

// Clone returns a deep copy; empty entries are dropped.
func (s FieldErrorSet) Clone() FieldErrorSet {
	out := make(FieldErrorSet, len(s))
	for field, messages := range s {
		if len(messages) == 0 {
			continue
		}
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// ValidationError is the structured rejection of an update. Fields holds the
// per-field messages; Form holds messages not tied to an editable field.
type ValidationError struct {
	Fields FieldErrorSet
	Form   []string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "media: validation failed"
	}
	parts := make([]string, 0, len(e.Fields)+1)
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields.Text(Field(field))))
	}
	if len(e.Form) > 0 {
		parts = append(parts, strings.Join(e.Form, " "))
	}
	if len(parts) == 0 {
		return "media: validation failed"
	}
	return "media: validation failed: " + strings.Join(parts, "; ")
}

// DecodeErrorPayload parses an API error body. Values may be a string or a
// list of strings; other shapes are rendered with fmt so no message is lost.
func DecodeErrorPayload(data []byte) (*ValidationError, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("media: decode error payload: %w", err)
	}

	payload := make(map[string][]string, len(raw))
	for key, value := range raw {
		payload[key] = messagesFromAny(value)
	}
	return MapErrorPayload(payload), nil
}

// MapErrorPayload splits a server error payload into field and form-level
// messages. Keys may be plain names, JSON pointers or dotted paths wrapped in
// request envelopes ("body.title", "/data/attributes/title"). Keys that do not
// resolve to an editable field become form-level messages.
func MapErrorPayload(payload map[string][]string) *ValidationError {
	out := &ValidationError{Fields: FieldErrorSet{}}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := keepMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		field, ok := resolveErrorPath(key)
		if !ok {
			out.Form = append(out.Form, messages...)
			continue
		}
		out.Fields[field] = append(out.Fields[field], messages...)
	}
	return out
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)

	out := make([]string, 0, len(combined))
	seen := make(map[string]struct{}, len(combined))
	for _, message := range combined {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// keepMessages drops blank entries and keeps the rest verbatim and in order.
func keepMessages(messages []string) []string {
	var out []string
	for _, message := range messages {
		if strings.TrimSpace(message) == "" {
			continue
		}
		out = append(out, message)
	}
	return out
}

func messagesFromAny(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			out = append(out, messagesFromAny(entry)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var out []string
		for _, key := range keys {
			out = append(out, messagesFromAny(v[key])...)
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func resolveErrorPath(raw string) (Field, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}

	segments := dropWrapperSegments(stripNumericSegments(parsePathSegments(trimmed)))
	if len(segments) == 0 {
		return "", false
	}
	return ParseField(segments[0])
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
	}
	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "detail", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
