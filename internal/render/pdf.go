// Package render writes summary tables into printable documents and
// spreadsheets. Renderers consume the core's ordered rows and grand totals
// as-is and never recompute them.
package render

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"expense-reporter/internal/domain"
)

// Column widths in millimeters on a letter page with 12mm margins.
const (
	pdfNameColWidth  = 100.0
	pdfTxnsColWidth  = 20.0
	pdfMoneyColWidth = 33.0
	pdfRowHeight     = 6.0
)

// PDFWriter renders sectioned summary tables into a letter-size PDF.
type PDFWriter struct {
	// Now stamps the header; it defaults to time.Now and exists so tests
	// get stable output.
	Now func() time.Time
}

// WriteSections writes one titled table per section, four columns: item,
// transaction count, net total, absolute total.
func (w PDFWriter) WriteSections(path, title string, sections []domain.Section) error {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Generated: "+now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	for _, section := range sections {
		w.writeSection(pdf, section)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf %s: %w", path, err)
	}
	return nil
}

func (w PDFWriter) writeSection(pdf *fpdf.Fpdf, section domain.Section) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, section.Title, "", 1, "L", false, 0, "")

	w.headerRow(pdf)
	pdf.SetFont("Helvetica", "", 9)
	if len(section.Rows) == 0 {
		pdf.CellFormat(pdfNameColWidth+pdfTxnsColWidth+2*pdfMoneyColWidth, pdfRowHeight,
			"(none)", "1", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	for _, row := range section.Rows {
		w.dataRow(pdf, row, false)
	}
	if section.Total != nil {
		w.dataRow(pdf, *section.Total, true)
	}
	pdf.Ln(4)
}

// WriteSummary writes a single table with its trailing grand-total row.
func (w PDFWriter) WriteSummary(path, title string, summary domain.Summary) error {
	section := domain.Section{Title: title, Rows: summary.Rows, Total: &summary.GrandTotal}
	return w.WriteSections(path, title, []domain.Section{section})
}

func (PDFWriter) headerRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(pdfNameColWidth, pdfRowHeight, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfTxnsColWidth, pdfRowHeight, "Txns", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfMoneyColWidth, pdfRowHeight, "Total (NET)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfMoneyColWidth, pdfRowHeight, "Total (ABS)", "1", 1, "R", true, 0, "")
}

func (PDFWriter) dataRow(pdf *fpdf.Fpdf, row domain.SummaryRow, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	pdf.CellFormat(pdfNameColWidth, pdfRowHeight, row.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(pdfTxnsColWidth, pdfRowHeight, fmt.Sprintf("%d", row.Stat.Txns), "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfMoneyColWidth, pdfRowHeight, domain.FormatMoney(row.Stat.Net), "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfMoneyColWidth, pdfRowHeight, domain.FormatMoney(row.Stat.AbsTotal), "1", 1, "R", false, 0, "")
}
