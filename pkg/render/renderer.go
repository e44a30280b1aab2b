package render

import (
	"context"

	"github.com/goliatone/go-mediaui/pkg/form"
)

// Renderer converts a form view into a byte representation (HTML, terminal
// transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}
