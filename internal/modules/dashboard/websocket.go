package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/userdash/internal/modules/dashboard/view"
)

// ServeWS streams the page's dashboard fragment over a WebSocket: once on
// connect and again after every state change. htmx's ws extension swaps the
// fragment in by id.
func (h *Handler) ServeWS(c echo.Context) error {
	page, ok := h.pages.Get(c.Param("page"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "dashboard page not found")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true, // In production, check origin.
	})
	if err != nil {
		slog.Error("Failed to upgrade dashboard WebSocket", "page_id", page.ID, "error", err)
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Inbound frames are not expected; CloseRead cancels ctx when the peer goes away.
	ctx := conn.CloseRead(c.Request().Context())

	// One pending signal is enough: every push renders the latest snapshot.
	changed := make(chan struct{}, 1)
	err = StateChangedEvent(page.ID).Subscribe(ctx, h.subscriber, func(ctx context.Context, ev StateChanged) error {
		select {
		case changed <- struct{}{}:
		default:
		}
		return nil
	})
	if err != nil {
		slog.Error("Failed to subscribe to dashboard state", "page_id", page.ID, "error", err)
		return nil
	}

	if err := h.push(ctx, conn, page); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := h.push(ctx, conn, page); err != nil {
				return nil
			}
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, page *Page) error {
	html, err := h.renderer.RenderComponent(ctx, view.Fragment(page.ID, page.Controller.Snapshot()))
	if err != nil {
		slog.Error("Failed to render dashboard fragment", "page_id", page.ID, "error", err)
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, html); err != nil {
		if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
			slog.Warn("Dashboard WebSocket write failed", "page_id", page.ID, "error", err)
		}
		return err
	}
	return nil
}
