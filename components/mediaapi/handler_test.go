package mediaapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mediaui/pkg/media"
)

func newTestHandler(t *testing.T, fns ...OptionFn) (http.Handler, *Store) {
	t.Helper()
	store, err := DefaultStore()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	h, err := Handler(append([]OptionFn{WithStore(store)}, fns...)...)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h, store
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var payload map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload
}

func TestHandler_GetMedia(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/media/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var item media.Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.ID != "42" || item.ChannelID() != "c1" || len(item.Extra["thumbnail"]) == 0 {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, target := range []string{"/media/999", "/channels/none", "/playlists/none"} {
		if rec := serve(h, http.MethodGet, target, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rec.Code)
		}
	}
	if rec := serve(h, http.MethodPatch, "/media/999", `{"id":"999","title":"x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing item: expected 404, got %d", rec.Code)
	}
}

func TestHandler_ListMedia(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h, http.MethodGet, "/media", "")

	var payload listResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ids := make([]string, 0, len(payload.Data))
	for _, item := range payload.Data {
		ids = append(ids, item.ID)
	}
	if diff := cmp.Diff([]string{"3", "7", "42"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_PatchUpdatesEditableFields(t *testing.T) {
	h, store := newTestHandler(t)

	body := `{"id":"42","title":"New title","description":"d","downloadable":false,"copyright":"GPL","thumbnail":"/elsewhere.jpg","channel":{"id":"c2"}}`
	rec := serve(h, http.MethodPatch, "/media/42", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, _ := store.Item("42")
	if stored.Title != "New title" || stored.Copyright != "GPL" || stored.Downloadable {
		t.Fatalf("editable fields not applied: %+v", stored)
	}
	if stored.ChannelID() != "c1" || string(stored.Extra["thumbnail"]) != `"/assets/thumbs/42.jpg"` {
		t.Fatalf("server-owned fields must be kept: %+v", stored)
	}
}

func TestHandler_PatchValidation(t *testing.T) {
	h, store := newTestHandler(t)

	cases := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "blank title",
			body: `{"id":"42","title":""}`,
			want: map[string][]string{"title": {"This field may not be blank."}},
		},
		{
			name: "missing title",
			body: `{"id":"42"}`,
			want: map[string][]string{"title": {"This field is required."}},
		},
		{
			name: "too long",
			body: `{"id":"42","title":"` + strings.Repeat("a", 101) + `"}`,
			want: map[string][]string{"title": {"Ensure this field has no more than 100 characters."}},
		},
		{
			name: "wrong type",
			body: `{"id":"42","title":"ok","downloadable":"yes"}`,
			want: map[string][]string{"downloadable": {"Must be a boolean."}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, http.MethodPatch, "/media/42", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if diff := cmp.Diff(tc.want, decodeErrors(t, rec)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}

	stored, _ := store.Item("42")
	if stored.Title != "Launch keynote" {
		t.Fatalf("rejected updates must not change the item, got %q", stored.Title)
	}
}

func TestHandler_PatchMalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h, http.MethodPatch, "/media/42", `{"id":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	payload := decodeErrors(t, rec)
	if len(payload[formErrorKey]) == 0 {
		t.Fatalf("expected a form-level message, got %v", payload)
	}
}

func TestHandler_WithoutValidation(t *testing.T) {
	h, store := newTestHandler(t, WithValidation(false))
	rec := serve(h, http.MethodPatch, "/media/42", `{"id":"42","title":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stored, _ := store.Item("42"); stored.Title != "" {
		t.Fatalf("expected blank title stored, got %q", stored.Title)
	}
}

func TestHandler_Guard(t *testing.T) {
	h, _ := newTestHandler(t, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	if rec := serve(h, http.MethodGet, "/profile", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandler_Profile(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h, http.MethodGet, "/profile", "")

	var profile media.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Username != "demo" || !profile.OwnsChannel("c1") || profile.OwnsChannel("c2") {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
