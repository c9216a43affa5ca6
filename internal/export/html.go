// Package export renders the intern listing as a standalone HTML page or a
// PDF table.
package export

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"practicehub/internal/normalize"
	"practicehub/models"
)

// DocumentTitle heads both export formats.
const DocumentTitle = "Listado de Practicantes"

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Layout wraps body in a minimal HTML document.
func Layout(title string) func(templ.Component) templ.Component {
	return func(body templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := write(w,
				`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>`,
				templ.EscapeString(title),
				`</title></head><body>`,
			); err != nil {
				return err
			}
			if err := body.Render(ctx, w); err != nil {
				return err
			}
			return write(w, `</body></html>`)
		})
	}
}

// InternSection renders one intern: name, career, area and technologies.
func InternSection(p models.Practicante) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w,
			`<section><h2>`, templ.EscapeString(p.DisplayName()), `</h2>`,
			`<p>`, templ.EscapeString(p.Carrera), `</p>`,
			`<p>`, templ.EscapeString(p.Area), `</p>`,
			`<p>`, templ.EscapeString(normalize.Join(p.Tecnologias.Strings())), `</p>`,
			`<hr></section>`,
		)
	})
}

// InternsPage is the full export document.
func InternsPage(interns []models.Practicante) templ.Component {
	sections := make([]templ.Component, 0, len(interns)+1)
	sections = append(sections, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, `<h1>`, templ.EscapeString(DocumentTitle), `</h1>`)
	}))
	for _, p := range interns {
		sections = append(sections, InternSection(p))
	}
	return Layout(DocumentTitle)(templ.Join(sections...))
}

// WriteHTML renders the export document for interns into w.
func WriteHTML(ctx context.Context, w io.Writer, interns []models.Practicante) error {
	return InternsPage(interns).Render(ctx, w)
}
