package view

import (
	"strings"
	"unicode/utf8"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/userdash/internal/domain"
)

var upper = cases.Upper(language.Und)

// Initial returns the avatar fallback glyph: the first character of name as
// given, upper-cased. It is empty when name is empty.
func Initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return upper.String(string(r))
}

// FormatAddress joins the address parts the way the card displays them.
func FormatAddress(a domain.Address) string {
	return strings.Join([]string{a.Street, a.Suite, a.City, a.Zipcode}, ", ")
}

// ProfileCard renders a fully populated profile.
func ProfileCard(p domain.UserProfile) g.Node {
	return Div(Class("card"), ID("profile-card"),
		Div(Class("card-header flex flex-row items-center gap-4"),
			avatar(p),
			Div(
				H2(Class("card-title text-xl font-semibold"), g.Text(p.Name)),
				P(Class("text-sm text-muted"), g.Text("User Profile")),
			),
		),
		Div(Class("card-content grid gap-2"),
			contactLine("mail", p.Email),
			contactLine("phone", p.Phone),
			labelled("Username:", Span(g.Text(p.Username))),
			labelled("Address:", Span(g.Text(FormatAddress(p.Address)))),
			labelled("Website:", Span(g.Text(p.Website))),
			labelled("Company:", Div(
				Span(Class("block"), g.Text(p.Company.Name)),
				Span(Class("block text-sm italic"), g.Text(p.Company.CatchPhrase)),
				Span(Class("block text-sm text-muted"), g.Text(p.Company.BS)),
			)),
		),
	)
}

// avatar renders the image with the initial-letter fallback layered beneath it.
func avatar(p domain.UserProfile) g.Node {
	initial := Initial(p.Name)
	return Span(Class("avatar h-16 w-16"),
		g.If(p.Avatar != "", Img(Class("avatar-image"), Src(p.Avatar), Alt(p.Name))),
		g.If(initial != "", Span(Class("avatar-fallback"), g.Text(initial))),
	)
}

func contactLine(icon, value string) g.Node {
	return Div(Class("flex items-center gap-2"),
		Span(Class("icon icon-"+icon+" h-4 w-4 text-muted"), g.Attr("aria-hidden", "true")),
		Span(g.Text(value)),
	)
}

func labelled(label string, value g.Node) g.Node {
	return Div(Class("mt-4"),
		P(Class("text-sm font-semibold"), g.Text(label)),
		value,
	)
}
