package render_test

import (
	"context"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/render"
)

type stubRenderer string

func (s stubRenderer) Name() string        { return string(s) }
func (s stubRenderer) ContentType() string { return "text/plain" }

func (s stubRenderer) Render(_ context.Context, view form.View, _ render.RenderOptions) ([]byte, error) {
	return []byte(string(s)), nil
}
