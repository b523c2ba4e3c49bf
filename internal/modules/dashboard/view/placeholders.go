package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func skeleton(classes string) g.Node {
	return Div(Class("skeleton " + classes))
}

// ProfileSkeleton stands in for the profile card while the profile is absent.
func ProfileSkeleton() g.Node {
	return Div(Class("card"), ID("profile-card"), g.Attr("aria-busy", "true"),
		Div(Class("card-header flex flex-row items-center gap-4"),
			skeleton("h-16 w-16 rounded-full"),
			Div(Class("space-y-2"),
				skeleton("h-4 w-[200px]"),
				skeleton("h-4 w-[160px]"),
			),
		),
		Div(Class("card-content space-y-2"),
			skeleton("h-4 w-[250px]"),
			skeleton("h-4 w-[200px]"),
		),
	)
}

// ActivitiesSkeleton stands in for the activity list while it is absent.
func ActivitiesSkeleton() g.Node {
	return Div(Class("card"), ID("activities-card"), g.Attr("aria-busy", "true"),
		Div(Class("card-header"),
			skeleton("h-6 w-[180px]"),
		),
		Div(Class("card-content space-y-4"),
			skeleton("h-4 w-full"),
			skeleton("h-4 w-full"),
			skeleton("h-4 w-full"),
		),
	)
}

// ErrorAlert replaces the whole dashboard when any fetch failed.
func ErrorAlert(message string) g.Node {
	return Div(Class("alert alert-destructive"), Role("alert"),
		Span(Class("icon icon-alert-circle h-4 w-4"), g.Attr("aria-hidden", "true")),
		H5(Class("alert-title"), g.Text("Error")),
		Div(Class("alert-description"), g.Text(message)),
	)
}
