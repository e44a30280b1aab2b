package mediaapi

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-mediaui/pkg/media"
)

func TestLoadStore(t *testing.T) {
	store, err := LoadStore(strings.NewReader(`{
		"media": [{"id": "1", "title": "One", "channel": {"id": "c"}}],
		"channels": [{"id": "c", "title": "C"}],
		"profile": {"username": "u", "channels": [{"id": "c"}]}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if item, ok := store.Item("1"); !ok || item.Title != "One" {
		t.Fatalf("unexpected item %+v", item)
	}
	if _, ok := store.Channel("c"); !ok {
		t.Fatalf("channel missing")
	}
	if !store.Profile().OwnsChannel("c") {
		t.Fatalf("profile missing channel")
	}
}

func TestLoadStore_Errors(t *testing.T) {
	if _, err := LoadStore(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if _, err := LoadStore(strings.NewReader(`{"media":[{"title":"no id"}]}`)); err == nil {
		t.Fatalf("expected error for item without id")
	}
}

func TestDefaultStore_IsFreshCopy(t *testing.T) {
	a, err := DefaultStore()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	b, _ := DefaultStore()

	a.PutItem(media.Item{ID: "42", Title: "changed"})
	if item, _ := b.Item("42"); item.Title == "changed" {
		t.Fatalf("stores must not share state")
	}
}

func TestStore_UpdateItemUnknown(t *testing.T) {
	if _, ok := NewStore().UpdateItem("x", media.Item{}); ok {
		t.Fatalf("expected unknown item to fail")
	}
}

func TestValidator(t *testing.T) {
	if _, err := NewValidator(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := NewValidator(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected error for malformed document")
	}

	v, err := DefaultValidator()
	if err != nil {
		t.Fatalf("default validator: %v", err)
	}
	if v.Document().Paths.Value("/media/{id}") == nil {
		t.Fatalf("expected /media/{id} in the document")
	}
}
