// Package reports renders ledger snapshots as downloadable documents.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin  = 20.0
	labelWidth  = 70.0
	rowHeight   = 8.0
	reportTitle = "Deal statistics"
)

// WriteDealStatsPDF renders stats as a one page A4 report and writes it to w.
func WriteDealStatsPDF(w io.Writer, stats domain.DealStats, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, false)
	pdf.SetAuthor("CRM backend", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format(time.RFC3339), "", 1, "C", false, 0, "")
	hr(pdf)

	sectionTitle(pdf, "Summary")
	kvLine(pdf, "Total deals", fmt.Sprintf("%d", stats.Total))
	kvLine(pdf, "Won amount", stats.WonAmount.StringFixed(2))
	kvLine(pdf, "Average check", stats.AverageCheck.StringFixed(2))
	pdf.Ln(2)
	hr(pdf)

	sectionTitle(pdf, "By status")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, rowHeight, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, rowHeight, "Deals", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, status := range domain.DealStatuses {
		pdf.CellFormat(labelWidth, rowHeight, string(status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowHeight, fmt.Sprintf("%d", stats.ByStatus[status]), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build deal stats report: %w", err)
	}
	return pdf.Output(w)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, rowHeight, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, rowHeight, value, "", 1, "L", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 2
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetLineWidth(0.2)
	pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	pdf.SetY(y + 2)
}
