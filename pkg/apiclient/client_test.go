package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mediaui/pkg/media"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", WithHTTPClient(srv.Client()), WithHeader("X-Test", "1"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "  ", "/api", "localhost"} {
		if _, err := New(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestGetMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/media/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Test") != "1" || r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing headers: %v", r.Header)
		}
		_, _ = io.WriteString(w, `{"id":"42","title":"A","thumbnail":"t.png","channel":{"id":"c1"}}`)
	})

	item, err := c.GetMedia(context.Background(), "42")
	if err != nil {
		t.Fatalf("get media: %v", err)
	}
	if item.ID != "42" || item.Title != "A" || item.ChannelID() != "c1" {
		t.Fatalf("unexpected item %+v", item)
	}
	if string(item.Extra["thumbnail"]) != `"t.png"` {
		t.Fatalf("extra field lost: %v", item.Extra)
	}
}

func TestGetMedia_EscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/media/a%2Fb" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		_, _ = io.WriteString(w, `{"id":"a/b"}`)
	})
	if _, err := c.GetMedia(context.Background(), "a/b"); err != nil {
		t.Fatalf("get media: %v", err)
	}
}

func TestGetMedia_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})

	_, err := c.GetMedia(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected *StatusError 404, got %#v", err)
	}
}

func TestPatchMedia_SendsFullItem(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/media/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	item := media.Item{ID: "42", Title: "B", Extra: map[string]json.RawMessage{"views": json.RawMessage(`7`)}}
	updated, err := c.PatchMedia(context.Background(), item)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.Title != "B" {
		t.Fatalf("empty response should echo the sent item, got %+v", updated)
	}

	want := map[string]any{
		"id":           "42",
		"title":        "B",
		"description":  "",
		"downloadable": false,
		"copyright":    "",
		"views":        float64(7),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchMedia_ValidationError(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = io.WriteString(w, `{"title":["Too long"],"detail":"Fix the form"}`)
			})

			_, err := c.PatchMedia(context.Background(), media.Item{ID: "42"})
			var validation *media.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if diff := cmp.Diff(media.FieldErrorSet{media.FieldTitle: {"Too long"}}, validation.Fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"Fix the form"}, validation.Form); diff != "" {
				t.Fatalf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchMedia_NotFoundWithJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	})

	_, err := c.PatchMedia(context.Background(), media.Item{ID: "42"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatchMedia_UnstructuredFailure(t *testing.T) {
	for _, tc := range []struct {
		name string
		code int
		body string
	}{
		{"bad request text", http.StatusBadRequest, "nope"},
		{"unprocessable empty object", http.StatusUnprocessableEntity, `{}`},
		{"server error", http.StatusInternalServerError, `{"title":["x"]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.PatchMedia(context.Background(), media.Item{ID: "42"})
			var validation *media.ValidationError
			if errors.As(err, &validation) {
				t.Fatalf("unexpected validation error %v", err)
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.Code != tc.code {
				t.Fatalf("expected status error %d, got %v", tc.code, err)
			}
		})
	}
}

func TestPatchMedia_RequiresID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected")
	})
	if _, err := c.PatchMedia(context.Background(), media.Item{}); err == nil {
		t.Fatalf("expected error for item without id")
	}
}

func TestChannelPlaylistProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/channels/c1":
			_, _ = io.WriteString(w, `{"id":"c1","title":"Talks","media":["42"]}`)
		case "/api/playlists/p1":
			_, _ = io.WriteString(w, `{"id":"p1","title":"Best of","channel":{"id":"c1"},"media":["42"]}`)
		case "/api/profile":
			_, _ = io.WriteString(w, `{"username":"ada","channels":[{"id":"c1"}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	channel, err := c.GetChannel(ctx, "c1")
	if err != nil || channel.Title != "Talks" || len(channel.MediaIDs) != 1 {
		t.Fatalf("channel %+v err %v", channel, err)
	}
	playlist, err := c.GetPlaylist(ctx, "p1")
	if err != nil || playlist.Channel == nil || playlist.Channel.ID != "c1" {
		t.Fatalf("playlist %+v err %v", playlist, err)
	}
	profile, err := c.GetProfile(ctx)
	if err != nil || !profile.OwnsChannel("c1") {
		t.Fatalf("profile %+v err %v", profile, err)
	}
}

func TestListMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/media" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"data":[{"id":"3"},{"id":"42","title":"A"}]}`)
	})

	items, err := c.ListMedia(context.Background())
	if err != nil {
		t.Fatalf("list media: %v", err)
	}
	if len(items) != 2 || items[1].Title != "A" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestMediaLoader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"42","title":"A"}`)
	})
	item, err := c.Media().Get(context.Background(), "42")
	if err != nil || item.Title != "A" {
		t.Fatalf("loader get %+v err %v", item, err)
	}
}
