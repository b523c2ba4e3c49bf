package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// Renderer renders templ components and gomponents nodes, either into a byte
// slice (for WebSocket pushes) or straight into an echo response.
type Renderer interface {
	RenderComponent(ctx context.Context, component any) ([]byte, error)
	Render(w io.Writer, name string, data any, c echo.Context) error
}

// ComponentRenderer is the echo.Renderer used by the server.
type ComponentRenderer struct{}

// NewComponentRenderer creates a ComponentRenderer.
func NewComponentRenderer() *ComponentRenderer {
	return &ComponentRenderer{}
}

func (r *ComponentRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case g.Node:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// RenderComponent renders component into memory.
func (r *ComponentRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("rendering component: %w", err)
	}
	return buf.Bytes(), nil
}

// Render implements echo.Renderer. The component travels in data; name is
// ignored.
func (r *ComponentRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
