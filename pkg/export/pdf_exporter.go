package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a week schedule into a printable PDF, one section per
// day with the event list beneath it.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF document for one week.
func (e *PDFExporter) Render(week WeekSchedule) ([]byte, error) {
	if len(week.Days) == 0 {
		return nil, fmt.Errorf("pdf requires at least one day")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("Week of %s", week.WeekStart.Format("Jan 2, 2006"))
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	if week.Student != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, week.Student, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, day := range week.Days {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, day.Date.Format("Monday, Jan 2"), "B", 1, "", false, 0, "")

		if len(day.Events) == 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 6, "No events", "", 1, "", false, 0, "")
			pdf.Ln(2)
			continue
		}

		pdf.SetFont("Arial", "", 9)
		for _, event := range day.Events {
			span := fmt.Sprintf("%s - %s", event.Start.Format("15:04"), event.End.Format("15:04"))
			pdf.CellFormat(35, 6, span, "", 0, "", false, 0, "")
			pdf.CellFormat(115, 6, event.Title, "", 0, "", false, 0, "")
			pdf.CellFormat(40, 6, event.Category, "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
