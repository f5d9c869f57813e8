package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"detos/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row of the invoice register.
var columns = []string{
	"Invoice Number",
	"Status",
	"Customer ID",
	"Billing State Code",
	"Seller State Code",
	"Items",
	"Sub Total",
	"Discount Total",
	"CGST",
	"SGST",
	"IGST",
	"Grand Total",
	"Issued At",
	"Paid At",
	"Created At",
}

// Writer wraps csv.Writer for exporting the invoice register as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.InvoiceNumber
	row[1] = string(inv.Status)
	row[2] = inv.CustomerID.String()
	row[3] = strconv.Itoa(inv.BillingStateID)
	row[4] = strconv.Itoa(inv.SellerStateID)
	row[5] = strconv.Itoa(inv.TotalItems)
	row[6] = inv.SubTotal.StringFixed(2)
	row[7] = inv.DiscountTotal.StringFixed(2)
	row[8] = inv.CGSTTotal.StringFixed(2)
	row[9] = inv.SGSTTotal.StringFixed(2)
	row[10] = inv.IGSTTotal.StringFixed(2)
	row[11] = inv.GrandTotal.StringFixed(2)
	row[12] = formatTime(inv.IssuedAt)
	row[13] = formatTime(inv.PaidAt)
	row[14] = inv.CreatedAt.Format(time.RFC3339)
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a tenant name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_tenant_name}_invoices_{YYYY-MM-DD}.csv
func BuildFilename(tenantName string) string {
	sanitized := SanitizeFilename(tenantName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_invoices_%s.csv", sanitized, date)
}
