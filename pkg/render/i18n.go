package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-mediaui/pkg/form"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler picks the string shown when a key cannot be
// translated. fallback is the untranslated text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// MapTranslator is a Translator backed by locale -> key -> message tables.
type MapTranslator map[string]map[string]string

// Translate implements Translator.
func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	messages, ok := m[locale]
	if !ok {
		return "", errors.New("render: unknown locale " + locale)
	}
	msg, ok := messages[key]
	if !ok {
		return "", errors.New("render: missing key " + key)
	}
	return msg, nil
}

// LabelKey is the message key of a control label, e.g. "media.title.label".
func LabelKey(control form.Control) string {
	return "media." + string(control.Field) + ".label"
}

// LocalizeView translates control labels in place. Nothing happens without a
// locale; translation failures are routed through opts.OnMissing.
func LocalizeView(view *form.View, opts RenderOptions) {
	if view == nil || strings.TrimSpace(opts.Locale) == "" {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	for i := range view.Controls {
		control := &view.Controls[i]
		control.Label = translate(opts.Locale, LabelKey(*control), control.Label, opts.Translator, onMissing)
	}
}

// Translate resolves key with the same fallback rules LocalizeView uses.
func Translate(opts RenderOptions, key, fallback string) string {
	if strings.TrimSpace(opts.Locale) == "" {
		return fallback
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
