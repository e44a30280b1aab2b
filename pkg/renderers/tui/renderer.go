// Package tui renders the metadata form as a sequence of terminal prompts.
// Every answer that changes a value is dispatched through the form as its own
// single-field patch.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		return nil, ErrNoDriver
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every control of view and serializes the resulting
// patch. Only changed fields are present in the output.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	var collected media.Patch
	props := form.Props{
		Disabled: view.Disabled,
		OnChange: func(patch media.Patch) {
			collected = collected.Merge(patch)
		},
	}
	if _, err := r.prompt(ctx, view, props, opts); err != nil {
		return nil, err
	}
	return r.serialize(collected)
}

// Prompt renders props and walks the controls with the prompt driver. Each
// changed answer is dispatched through form.Dispatch, so props.OnChange sees
// one single-field patch per edit. It returns the number of dispatched edits.
func (r *Renderer) Prompt(ctx context.Context, props form.Props, opts render.RenderOptions) (int, error) {
	return r.prompt(ctx, form.Render(props), props, opts)
}

// Summary prints the current state of view without prompting.
func (r *Renderer) Summary(ctx context.Context, view form.View, opts render.RenderOptions) error {
	if r.driver == nil {
		return ErrNoDriver
	}
	render.ApplySubset(&view, opts.Fields)
	render.LocalizeView(&view, opts)

	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	for _, control := range view.Controls {
		line := fmt.Sprintf("%s%s: %s", r.theme.InfoPrefix, control.Label, displayValue(control))
		if control.Error {
			line += fmt.Sprintf("\n%s%s", r.theme.ErrorPrefix, control.HelperText)
		}
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) prompt(ctx context.Context, view form.View, props form.Props, opts render.RenderOptions) (int, error) {
	if ctx == nil {
		return 0, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.driver == nil {
		return 0, ErrNoDriver
	}

	render.ApplySubset(&view, opts.Fields)
	render.LocalizeView(&view, opts)

	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return 0, err
		}
	}

	if view.Disabled {
		return 0, r.driver.Info(ctx, r.theme.InfoPrefix+render.Translate(opts, "media.form.disabled", "The form is read-only right now."))
	}

	dispatched := 0
	for _, control := range view.Controls {
		event, changed, err := r.promptControl(ctx, control)
		if err != nil {
			return dispatched, fmt.Errorf("tui: prompt %s: %w", control.Field, err)
		}
		if !changed {
			continue
		}
		if form.Dispatch(props, event) {
			dispatched++
		}
	}
	return dispatched, nil
}

func (r *Renderer) promptControl(ctx context.Context, control form.Control) (form.InputEvent, bool, error) {
	if control.Error {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, control.Label, control.HelperText)); err != nil {
			return form.InputEvent{}, false, err
		}
	}

	switch control.Kind {
	case form.KindCheckbox:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: control.Label,
			Default: control.Checked,
			Help:    control.HelperText,
		})
		if err != nil {
			return form.InputEvent{}, false, err
		}
		return form.CheckboxInput(control.Field, answer), answer != control.Checked, nil
	case form.KindTextArea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: control.Label,
			Default: control.Value,
			Help:    control.HelperText,
		})
		if err != nil {
			return form.InputEvent{}, false, err
		}
		return form.TextInput(control.Field, answer), answer != control.Value, nil
	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: control.Label,
			Default: control.Value,
			Help:    control.HelperText,
		})
		if err != nil {
			return form.InputEvent{}, false, err
		}
		return form.TextInput(control.Field, answer), answer != control.Value, nil
	}
}

func (r *Renderer) serialize(patch media.Patch) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(patchValues(patch).Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(patch)), nil
	default:
		out, err := json.Marshal(patch)
		if err != nil {
			return nil, fmt.Errorf("tui: encode patch: %w", err)
		}
		return out, nil
	}
}

func patchValues(patch media.Patch) url.Values {
	values := url.Values{}
	if patch.Title != nil {
		values.Set(string(media.FieldTitle), *patch.Title)
	}
	if patch.Description != nil {
		values.Set(string(media.FieldDescription), *patch.Description)
	}
	if patch.Downloadable != nil {
		values.Set(string(media.FieldDownloadable), strconv.FormatBool(*patch.Downloadable))
	}
	if patch.Copyright != nil {
		values.Set(string(media.FieldCopyright), *patch.Copyright)
	}
	return values
}

func prettyPrint(patch media.Patch) string {
	values := patchValues(patch)
	var b strings.Builder
	for _, field := range patch.Fields() {
		fmt.Fprintf(&b, "%s=%s\n", field, values.Get(string(field)))
	}
	return b.String()
}

func displayValue(control form.Control) string {
	if control.Kind == form.KindCheckbox {
		if control.Checked {
			return "yes"
		}
		return "no"
	}
	if control.Value == "" {
		return "(empty)"
	}
	return control.Value
}
