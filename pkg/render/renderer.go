package render

import (
	"context"
)

// Renderer converts a Page into a byte representation (HTML, JSON, terminal
// output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page) ([]byte, error)
}
