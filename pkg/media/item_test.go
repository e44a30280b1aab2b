package media_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mediaui/pkg/media"
)

const sampleItem = `{
	"id": "42",
	"title": "A",
	"description": "first cut",
	"downloadable": false,
	"copyright": "CC-BY",
	"channel": {"id": "c1", "title": "Main", "avatar": {"url": "/a.png"}},
	"views": 1024,
	"tags": ["one", "two"],
	"thumbnail": {"url": "/t.jpg", "w": 320}
}`

func decodeItem(t *testing.T, payload string) media.Item {
	t.Helper()
	var item media.Item
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item
}

func TestItem_DecodeKnownAndExtraFields(t *testing.T) {
	item := decodeItem(t, sampleItem)

	if item.ID != "42" || item.Title != "A" || item.Copyright != "CC-BY" {
		t.Fatalf("unexpected editable fields: %+v", item)
	}
	if item.ChannelID() != "c1" {
		t.Fatalf("expected channel c1, got %q", item.ChannelID())
	}
	if !item.Loaded() {
		t.Fatalf("expected decoded item to be loaded")
	}

	want := map[string]string{
		"views":     `1024`,
		"tags":      `["one", "two"]`,
		"thumbnail": `{"url": "/t.jpg", "w": 320}`,
	}
	got := make(map[string]string, len(item.Extra))
	for key, value := range item.Extra {
		got[key] = string(value)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extra fields mismatch (-want +got):\n%s", diff)
	}
}

func TestItem_MissingFieldsDefault(t *testing.T) {
	item := decodeItem(t, `{"id": "7", "title": null}`)
	if item.Title != "" || item.Description != "" || item.Downloadable || item.Copyright != "" {
		t.Fatalf("expected zero values, got %+v", item)
	}
	if item.Channel != nil {
		t.Fatalf("expected nil channel")
	}
}

func TestItem_ApplyKeepsUnpatchedFields(t *testing.T) {
	item := decodeItem(t, sampleItem)

	cases := []struct {
		name  string
		patch media.Patch
		want  func(media.Item) media.Item
	}{
		{
			name:  "title",
			patch: media.PatchTitle("B"),
			want:  func(i media.Item) media.Item { i.Title = "B"; return i },
		},
		{
			name:  "description",
			patch: media.PatchDescription(""),
			want:  func(i media.Item) media.Item { i.Description = ""; return i },
		},
		{
			name:  "downloadable",
			patch: media.PatchDownloadable(true),
			want:  func(i media.Item) media.Item { i.Downloadable = true; return i },
		},
		{
			name:  "copyright",
			patch: media.PatchCopyright("All rights reserved"),
			want:  func(i media.Item) media.Item { i.Copyright = "All rights reserved"; return i },
		},
		{
			name:  "empty",
			patch: media.Patch{},
			want:  func(i media.Item) media.Item { return i },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := item.Apply(tc.patch)
			if diff := cmp.Diff(tc.want(item), got, cmp.AllowUnexported(media.ChannelRef{})); diff != "" {
				t.Fatalf("apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestItem_RoundTripPreservesOpaqueFields(t *testing.T) {
	item := decodeItem(t, sampleItem).Apply(media.PatchTitle("B"))

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode marshalled item: %v", err)
	}

	if string(raw["title"]) != `"B"` {
		t.Fatalf("expected patched title, got %s", raw["title"])
	}
	if string(raw["thumbnail"]) != `{"url":"/t.jpg","w":320}` {
		t.Fatalf("thumbnail changed: %s", raw["thumbnail"])
	}
	if string(raw["channel"]) != `{"id":"c1","title":"Main","avatar":{"url":"/a.png"}}` {
		t.Fatalf("channel changed: %s", raw["channel"])
	}
	if string(raw["id"]) != `"42"` {
		t.Fatalf("id changed: %s", raw["id"])
	}
}

func TestPlaceholder(t *testing.T) {
	p := media.Placeholder()
	if p.Loaded() || p.ID != "" {
		t.Fatalf("placeholder should not be loaded: %+v", p)
	}
}
