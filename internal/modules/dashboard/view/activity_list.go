package view

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/userdash/internal/domain"
)

// ActivityKey is the DOM id of one activity entry.
func ActivityKey(a domain.UserActivity) string {
	return "activity-" + strconv.Itoa(a.ID)
}

// ActivityList renders every activity in the order given.
func ActivityList(activities []domain.UserActivity) g.Node {
	return Div(Class("card"), ID("activities-card"),
		Div(Class("card-header"),
			H2(Class("card-title text-xl font-semibold"), g.Text("User Activities")),
		),
		Div(Class("card-content"),
			g.If(len(activities) == 0, P(Class("text-sm text-muted"), g.Text("No activities yet."))),
			Ul(Class("space-y-4"),
				g.Map(activities, func(a domain.UserActivity) g.Node {
					return Li(ID(ActivityKey(a)),
						H3(Class("font-semibold"), g.Text(a.Title)),
						P(Class("text-sm text-muted"), g.Text(a.Content)),
					)
				}),
			),
		),
	)
}
