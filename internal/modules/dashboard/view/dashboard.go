package view

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/userdash/internal/dashboard"
)

// PollInterval is how often a non-terminal fragment asks for a refresh.
const PollInterval = "500ms"

// Dashboard renders a view state. A failure hides everything else; otherwise
// each card shows its data or its skeleton depending only on its own slot.
func Dashboard(state dashboard.ViewState) g.Node {
	if state.Phase == dashboard.PhaseFailed || state.HasError() {
		return ErrorAlert(state.Error)
	}

	return Div(Class("container mx-auto p-4 space-y-4"),
		H1(Class("text-2xl font-bold mb-4"), g.Text("User Dashboard")),
		Div(Class("grid gap-4 md:grid-cols-2"),
			g.Iff(state.HasProfile(), func() g.Node { return ProfileCard(*state.Profile) }),
			g.If(!state.HasProfile(), ProfileSkeleton()),
			g.Iff(state.HasActivities(), func() g.Node { return ActivityList(state.Activities) }),
			g.If(!state.HasActivities(), ActivitiesSkeleton()),
		),
	)
}

// FragmentID is the DOM id of a page instance's dashboard fragment.
func FragmentID(pageID string) string {
	return "dashboard-" + pageID
}

// PagePath is the URL of a page instance's fragment.
func PagePath(pageID string) string {
	return "/pages/" + pageID
}

// Fragment wraps Dashboard in the swappable container. While the phase is not
// terminal the container polls for its own replacement.
func Fragment(pageID string, state dashboard.ViewState) g.Node {
	return Div(ID(FragmentID(pageID)), Class("dashboard"),
		g.Attr("data-phase", state.Phase.String()),
		g.Attr("data-subject", state.Subject),
		g.If(!state.Phase.Terminal(), g.Group{
			hx.Get(PagePath(pageID)),
			hx.Trigger("every " + PollInterval),
			hx.Swap("outerHTML"),
		}),
		Dashboard(state),
	)
}

// SubjectForm lets the user switch the page instance to another user.
func SubjectForm(pageID, subject string) g.Node {
	return Form(Class("subject-form flex gap-2 p-4"),
		Method("post"), Action(PagePath(pageID)+"/subject"),
		hx.Post(PagePath(pageID)+"/subject"),
		hx.Target("#"+FragmentID(pageID)),
		hx.Swap("outerHTML"),
		Input(Type("text"), Name("id"), Value(subject), Placeholder("User ID"), g.Attr("inputmode", "numeric")),
		Button(Type("submit"), Class("btn"), g.Text("Load")),
	)
}

// Page is the body of the full dashboard document. It subscribes to the
// page instance's live stream and falls back to polling.
func Page(pageID string, state dashboard.ViewState) g.Node {
	return Main(Class("page"),
		hx.Ext("ws"), g.Attr("ws-connect", PagePath(pageID)+"/ws"),
		SubjectForm(pageID, state.Subject),
		Fragment(pageID, state),
	)
}
