package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"practicehub/internal/normalize"
	"practicehub/models"
)

type column struct {
	title string
	width float64
	value func(models.Practicante) string
}

var pdfColumns = []column{
	{"Nombre", 42, func(p models.Practicante) string { return p.DisplayName() }},
	{"Carrera", 36, func(p models.Practicante) string { return p.Carrera }},
	{"Área", 24, func(p models.Practicante) string { return p.Area }},
	{"Estado", 26, func(p models.Practicante) string { return models.AvailabilityLabel(p.Estado) }},
	{"Tecnologías", 62, func(p models.Practicante) string { return normalize.Join(p.Tecnologias.Strings()) }},
}

const (
	rowHeight   = 7.0
	cellPadding = 2.0
)

// fit shortens s with an ellipsis until it fits in width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if candidate := string(runes) + "..."; pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

// WritePDF renders the intern table as an A4 PDF into w.
func WritePDF(w io.Writer, interns []models.Practicante) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(DocumentTitle, false)
	pdf.SetCreator("PracticeHub", false)
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(52, 58, 64)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(DocumentTitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, p := range interns {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(241, 243, 245)
		for _, col := range pdfColumns {
			text := fit(pdf, tr(col.value(p)), col.width-cellPadding)
			pdf.CellFormat(col.width, rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}
