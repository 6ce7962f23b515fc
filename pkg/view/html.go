package view

import (
	"embed"
	"html/template"
	"io"

	"mealorders/pkg/controller"
)

//go:embed templates/*.tmpl
var files embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"severityClass": func(m *controller.Message) string {
		if m == nil {
			return ""
		}
		return "output-" + string(m.Severity)
	},
}).ParseFS(files, "templates/*.tmpl"))

// RenderPage writes the full HTML page.
func RenderPage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Meal Orders"
	}
	if p.Mode == "" {
		p.Mode = controller.ModeRandom
	}
	if len(p.Pending.Rows) == 0 && p.Pending.Placeholder == "" {
		p.Pending.Placeholder = PendingPlaceholder
	}
	return tmpl.ExecuteTemplate(w, "page.html.tmpl", p)
}

// RenderPending writes only the pending orders container.
func RenderPending(w io.Writer, v Pending) error {
	return tmpl.ExecuteTemplate(w, "pending", v)
}

// RenderCompleted writes only the completed section. Nothing is written
// when the view is hidden.
func RenderCompleted(w io.Writer, v Completed) error {
	return tmpl.ExecuteTemplate(w, "completed", v)
}
