package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	dash "github.com/nfrund/userdash/internal/dashboard"
	"github.com/nfrund/userdash/internal/middleware"
	"github.com/nfrund/userdash/internal/modules/dashboard/view"
	"github.com/nfrund/userdash/internal/pubsub"
	"github.com/nfrund/userdash/internal/rendering"
	gview "github.com/nfrund/userdash/internal/view"
	"github.com/nfrund/userdash/web/src/templates/layouts"
)

// htmxStopPolling tells htmx to cancel the polling trigger of the element.
const htmxStopPolling = 286

// SubjectRequest carries a subject identifier from the route or the form.
type SubjectRequest struct {
	ID string `param:"id" form:"id" validate:"required,alphanum,max=64"`
}

const invalidSubjectMessage = "User ID must contain only letters and digits."

// Handler serves the dashboard pages, fragments, live stream and JSON API.
type Handler struct {
	pages      *PageStore
	fetcher    dash.Fetcher
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	renderer   rendering.Renderer
}

// NewHandler creates a Handler.
func NewHandler(pages *PageStore, fetcher dash.Fetcher, pub pubsub.Publisher, sub pubsub.Subscriber, renderer rendering.Renderer) *Handler {
	return &Handler{
		pages:      pages,
		fetcher:    fetcher,
		publisher:  pub,
		subscriber: sub,
		renderer:   renderer,
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// publishState is the controller observer. It only announces the change;
// receivers read the current snapshot themselves.
func (h *Handler) publishState(pageID string, state dash.ViewState) {
	if h.publisher == nil {
		return
	}
	ev := StateChanged{PageID: pageID, Subject: state.Subject, Generation: state.Generation, Phase: state.Phase}
	if err := StateChangedEvent(pageID).Publish(context.Background(), h.publisher, pageID, ev); err != nil {
		slog.Error("Failed to publish dashboard state", "page_id", pageID, "error", err)
	}
}

func (h *Handler) renderPage(c echo.Context, status int, page *Page) error {
	state := page.Controller.Snapshot()
	content := gview.AdaptGomponentToTempl(view.Page(page.ID, state))
	return c.Render(status, "", layouts.Base("User "+state.Subject, gview.GetFlashData(c), content))
}

// UserGet opens a new page instance for the user in the path.
func (h *Handler) UserGet(c echo.Context) error {
	var req SubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidSubjectMessage)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidSubjectMessage)
	}

	page := h.pages.Create(h.publishState)
	page.Controller.SetSubject(req.ID)

	middleware.FromContext(c.Request().Context()).Info("Opened dashboard page", "page_id", page.ID, "subject", req.ID)
	return h.renderPage(c, http.StatusOK, page)
}

// PageGet returns the dashboard fragment for htmx, or the whole document
// for a plain browser request.
func (h *Handler) PageGet(c echo.Context) error {
	page, ok := h.pages.Get(c.Param("page"))
	if !ok {
		if isHTMX(c) {
			return c.NoContent(htmxStopPolling)
		}
		return echo.NewHTTPError(http.StatusNotFound, "dashboard page not found")
	}

	if !isHTMX(c) {
		return h.renderPage(c, http.StatusOK, page)
	}
	return c.Render(http.StatusOK, "", view.Fragment(page.ID, page.Controller.Snapshot()))
}

// SubjectPost switches an existing page instance to another user.
func (h *Handler) SubjectPost(c echo.Context) error {
	page, ok := h.pages.Get(c.Param("page"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "dashboard page not found")
	}

	var req SubjectRequest
	if err := c.Bind(&req); err == nil {
		err = c.Validate(&req)
		if err == nil {
			page.Controller.SetSubject(req.ID)
			if isHTMX(c) {
				return c.Render(http.StatusOK, "", view.Fragment(page.ID, page.Controller.Snapshot()))
			}
			return c.Redirect(http.StatusSeeOther, view.PagePath(page.ID))
		}
	}

	gview.SetFlashError(c, invalidSubjectMessage)
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", view.PagePath(page.ID))
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, view.PagePath(page.ID))
}
