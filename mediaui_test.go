package mediaui

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/renderers/tui"
	"github.com/goliatone/go-mediaui/pkg/renderers/vanilla"
)

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet not readable: %v", err)
	}
	if _, err := fs.ReadFile(PageTemplates(), "layout.tpl"); err != nil {
		t.Fatalf("layout not readable: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("form template not readable: %v", err)
	}
}

func TestNewServer_RejectsRelativeURL(t *testing.T) {
	if _, err := NewServer("/api", nil); err == nil {
		t.Fatal("expected an error for a relative base url")
	}
	if _, err := NewServer("http://localhost:8080/api", nil); err != nil {
		t.Fatalf("new server: %v", err)
	}
}

func TestRenderEditForm(t *testing.T) {
	out, err := RenderEditForm(context.Background(),
		media.Item{ID: "42", Title: "Launch keynote"},
		media.FieldErrorSet{media.FieldTitle: {"Too long"}},
		RenderOptions{Action: "/media/42/edit", Method: "PATCH"},
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{`action="/media/42/edit"`, `name="_method" value="PATCH"`, `value="Launch keynote"`, "Too long"} {
		if !strings.Contains(html, want) {
			t.Fatalf("%q missing from:\n%s", want, html)
		}
	}
}

func TestRenderers(t *testing.T) {
	registry, err := Renderers()
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	if diff := cmp.Diff([]string{tui.Name, vanilla.Name}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	out, err := RenderForm(context.Background(), registry, vanilla.Name, media.Item{ID: "42", Title: "Launch keynote"}, nil, RenderOptions{})
	if err != nil || !strings.Contains(string(out), `value="Launch keynote"`) {
		t.Fatalf("render through registry: %v\n%s", err, out)
	}
	if _, err := RenderForm(context.Background(), registry, "pdf", media.Item{ID: "42"}, nil, RenderOptions{}); err == nil {
		t.Fatal("expected an error for an unknown renderer")
	}
}
