package render_test

import (
	"testing"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/render"
)

func TestLocalizeView_UsesKeysAndFallbacks(t *testing.T) {
	view := form.Render(form.Props{})

	render.LocalizeView(&view, render.RenderOptions{
		Locale: "es",
		Translator: render.MapTranslator{
			"es": {"media.title.label": "Título", "media.copyright.label": ""},
		},
	})

	want := map[media.Field]string{
		media.FieldTitle:        "Título",
		media.FieldDescription:  "Description",
		media.FieldDownloadable: "Downloadable",
		media.FieldCopyright:    "Copyright",
	}
	for _, control := range view.Controls {
		if control.Label != want[control.Field] {
			t.Fatalf("label for %s = %q, want %q", control.Field, control.Label, want[control.Field])
		}
	}
}

func TestLocalizeView_NoLocaleIsNoop(t *testing.T) {
	view := form.Render(form.Props{})
	calls := 0
	render.LocalizeView(&view, render.RenderOptions{
		OnMissing: func(_, _, fallback string, _ error) string {
			calls++
			return fallback
		},
	})
	if calls != 0 {
		t.Fatalf("expected no translation attempts, got %d", calls)
	}
}

func TestTranslate_MissingTranslatorUsesHandler(t *testing.T) {
	var gotErr error
	got := render.Translate(render.RenderOptions{
		Locale: "fr",
		OnMissing: func(_, key, _ string, err error) string {
			gotErr = err
			return "[" + key + "]"
		},
	}, "media.cannot_edit", "You cannot edit this media item.")

	if got != "[media.cannot_edit]" {
		t.Fatalf("unexpected translation %q", got)
	}
	if gotErr != render.ErrMissingTranslator {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}
