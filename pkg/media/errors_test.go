package media_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-mediaui/pkg/media"
)

func TestMapErrorPayload_PathForms(t *testing.T) {
	payload := map[string][]string{
		"/body/title":                {"Title is required"},
		"data.attributes.copyright":  {"Unknown licence"},
		"$.body.description":         {"Too long", "  "},
		"downloadable":               {"Must be a boolean"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
		"id":                         {"Read only"},
	}

	mapped := media.MapErrorPayload(payload)

	wantFields := media.FieldErrorSet{
		media.FieldTitle:        {"Title is required"},
		media.FieldCopyright:    {"Unknown licence"},
		media.FieldDescription:  {"Too long"},
		media.FieldDownloadable: {"Must be a boolean"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Read only", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrorPayload_StringAndListValues(t *testing.T) {
	body := `{"title": ["Too long"], "copyright": "Required", "detail": "Try again", "description": []}`

	mapped, err := media.DecodeErrorPayload([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	wantFields := media.FieldErrorSet{
		media.FieldTitle:     {"Too long"},
		media.FieldCopyright: {"Required"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrorPayload_RejectsNonObject(t *testing.T) {
	if _, err := media.DecodeErrorPayload([]byte(`["nope"]`)); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}

func TestFieldErrorSet_Accessors(t *testing.T) {
	set := media.FieldErrorSet{
		media.FieldTitle:       {"Required", "Too short"},
		media.FieldDescription: {},
	}

	if !set.Has(media.FieldTitle) || set.Has(media.FieldDescription) || set.Has(media.FieldCopyright) {
		t.Fatalf("unexpected Has results")
	}
	if got := set.Text(media.FieldTitle); got != "Required Too short" {
		t.Fatalf("unexpected joined text %q", got)
	}

	clone := set.Clone()
	clone[media.FieldTitle][0] = "changed"
	if set[media.FieldTitle][0] != "Required" {
		t.Fatalf("clone shares storage with original")
	}
	if _, ok := clone[media.FieldDescription]; ok {
		t.Fatalf("clone should drop empty entries")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &media.ValidationError{
		Fields: media.FieldErrorSet{media.FieldTitle: {"Too long"}},
		Form:   []string{"Try again"},
	}
	msg := err.Error()
	if !strings.Contains(msg, "title: Too long") || !strings.Contains(msg, "Try again") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := media.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
