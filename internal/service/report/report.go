// Package report renders the aggregated invoice summary of a user into a
// PDF file under the configured media directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/service/invoice"
)

type Service struct {
	// Directory the PDF files are written to
	mediaRoot string

	// URL prefix under which the files are served back
	mediaURL string
}

func NewService(mediaRoot string, mediaURL string) *Service {
	return &Service{
		mediaRoot: mediaRoot,
		mediaURL:  mediaURL,
	}
}

// Generate writes report_<user_id>.pdf for the summary and returns the URL
// path the file is served on
func (s *Service) Generate(userID uuid.UUID, summary invoice.Summary) (string, error) {
	if err := os.MkdirAll(s.mediaRoot, 0o755); err != nil {
		return "", fmt.Errorf("error while preparing media dir. Err: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Invoice report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Items table: row number, name, line total
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 8, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Total Price", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range summary.Items {
		pdf.CellFormat(15, 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(110, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, item.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.CellFormat(0, 7, "Subtotal without tax: "+summary.SubTotal.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Subtotal with tax: "+summary.SubTotalWithTax.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Final amount with discount applied: "+summary.FinalAmount.StringFixed(2), "", 1, "L", false, 0, "")

	name := "report_" + userID.String() + ".pdf"
	if err := pdf.OutputFileAndClose(filepath.Join(s.mediaRoot, name)); err != nil {
		return "", fmt.Errorf("error while writing pdf. Err: %w", err)
	}

	return s.mediaURL + name, nil
}
