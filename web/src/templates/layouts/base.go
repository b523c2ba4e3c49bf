package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/userdash/internal/view"
)

// Script sources loaded by every page.
const (
	HTMXScript   = "https://unpkg.com/htmx.org@2.0.4"
	HTMXWSScript = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
)

// Base wraps content in the HTML document shell, including pending flash
// messages.
func Base(title string, flash view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html><html lang=\"en\">"); err != nil {
			return err
		}
		if err := head(title).Render(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body class="bg-background text-foreground">`); err != nil {
			return err
		}
		if err := flashes(flash).Render(w); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func head(title string) g.Node {
	return h.Head(
		h.Meta(h.Charset("utf-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
		h.TitleEl(g.Text(CalculateTitle(title))),
		h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
		h.Script(h.Src(HTMXScript)),
		h.Script(h.Src(HTMXWSScript)),
	)
}

func flashes(f view.FlashData) g.Node {
	if f.Empty() {
		return g.Group{}
	}
	return h.Div(h.ID("flash-messages"), h.Class("p-4 space-y-2"),
		g.Map(f.Success, func(m string) g.Node {
			return h.Div(h.Class("alert alert-success"), h.Role("status"), g.Text(m))
		}),
		g.Map(f.Error, func(m string) g.Node {
			return h.Div(h.Class("alert alert-destructive"), h.Role("alert"), g.Text(m))
		}),
	)
}
