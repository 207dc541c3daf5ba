package pdf

import (
	"context"
	"errors"
)

var ErrEmptyRender = errors.New("empty_render")

// Engine prints an HTML document to PDF bytes.
type Engine interface {
	Render(ctx context.Context, html string) ([]byte, error)
}
