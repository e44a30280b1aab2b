package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mediaui/pkg/form"
)

func TestDefaultRegistry_CoversEveryKind(t *testing.T) {
	registry := NewDefaultRegistry()
	want := []string{string(form.KindCheckbox), string(form.KindText), string(form.KindTextArea)}
	if diff := cmp.Diff(want, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterAndClone(t *testing.T) {
	noop := func(*bytes.Buffer, form.Control, ComponentData) error { return nil }

	registry := New()
	if err := registry.Register(" ", Descriptor{Renderer: noop}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register("text", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	registry.MustRegister("Text", Descriptor{Renderer: noop, Stylesheets: []string{"/a.css", "/b.css"}})
	registry.MustRegister("checkbox", Descriptor{Renderer: noop, Stylesheets: []string{"/b.css"}})

	clone := registry.Clone()
	clone.MustRegister("textarea", Descriptor{Renderer: noop})
	if _, ok := registry.Descriptor("textarea"); ok {
		t.Fatalf("clone mutation leaked into original")
	}

	got := registry.Stylesheets([]string{"text", "checkbox", "missing"})
	if diff := cmp.Diff([]string{"/a.css", "/b.css"}, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateComponentRenderer_RequiresEngine(t *testing.T) {
	descriptor, ok := NewDefaultRegistry().Descriptor("text")
	if !ok {
		t.Fatalf("expected text component")
	}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, form.Control{ID: "media-title"}, ComponentData{}); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}
