package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// certificateData feeds the funding certificate template.
type certificateData struct {
	UserName       string
	PropertyName   string
	ConfirmedUnits int
	IssuedAt       time.Time
}

// writeCertificate renders a one-page PDF confirming a user's stake.
func writeCertificate(w io.Writer, data certificateData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(68, 114, 196)
	pdf.CellFormat(0, 14, "Certificate of Funding", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"This certifies that %s holds %d confirmed share-unit(s) in the property %q.",
		data.UserName, data.ConfirmedUnits, data.PropertyName), "", "C", false)
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 8, "Issued on "+data.IssuedAt.Format("2006-01-02"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
