// Command seedplans converts a detailing service catalogue Excel file into a
// SQL seed file for one tenant. The workbook's first sheet lists one plan per
// row: name, SAC code, base price, GST rate.
// Usage: go run ./cmd/seedplans <tenant-slug> [catalogue.xlsx]
// Output: db/seeds/service_plans.sql
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 100

type planEntry struct {
	name    string
	sacCode string
	price   float64
	gstRate float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedplans <tenant-slug> [catalogue.xlsx]")
		os.Exit(1)
	}
	slug := os.Args[1]

	xlsxPath := "Detailing Service Catalogue.xlsx"
	if len(os.Args) > 2 {
		xlsxPath = os.Args[2]
	}
	outPath := "db/seeds/service_plans.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseCatalogueSheet(f)
	if err != nil {
		return fmt.Errorf("parse catalogue sheet: %w", err)
	}
	log.Printf("catalogue sheet: %d plans", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- Service plan seed data generated from %s.\n-- %d plans for tenant %q in batches of %d.\nBEGIN;\n\n",
		xlsxPath, len(entries), slug, batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, slug, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d plans (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseCatalogueSheet reads the first sheet.
// Columns: A(0)=plan name, B(1)=SAC code, C(2)=base price, D(3)=GST rate
// (free text like "18%" or "Exempt"). Data starts at row index 1 (header row).
func parseCatalogueSheet(f *excelize.File) ([]planEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []planEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			continue
		}

		name := strings.TrimSpace(cellVal(row, 0))
		sacCode := strings.TrimSpace(cellVal(row, 1))
		if name == "" || !isNumeric(sacCode) {
			continue
		}
		if seen[name] {
			continue
		}

		var price float64
		if _, serr := fmt.Sscanf(strings.TrimSpace(cellVal(row, 2)), "%f", &price); serr != nil || price < 0 {
			continue
		}

		rate, ok := parseGSTRate(strings.TrimSpace(cellVal(row, 3)))
		if !ok {
			continue
		}

		seen[name] = true
		entries = append(entries, planEntry{name: name, sacCode: sacCode, price: price, gstRate: rate})
	}
	return entries, nil
}

// ratePattern matches a number followed by "%".
var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// parseGSTRate extracts a GST rate from free-text rate strings.
// Examples: "18%" → 18, "Exempt" → 0, "5 %" → 5.
func parseGSTRate(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	lower := strings.ToLower(s)
	if lower == "exempt" || lower == "nil" {
		return 0, true
	}

	m := ratePattern.FindStringSubmatch(strings.ReplaceAll(s, " ", ""))
	if m == nil {
		return 0, false
	}

	var rate float64
	if _, err := fmt.Sscanf(m[1], "%f", &rate); err != nil {
		return 0, false
	}
	return rate, true
}

func writeBatch(out *os.File, slug string, batch []planEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO service_plans (id, tenant_id, plan_name, sac_code, price, gst_rate, is_active)\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString("UNION ALL\n")
		}
		fmt.Fprintf(&b, "SELECT gen_random_uuid(), t.id, '%s', '%s', %.2f, %.2f, TRUE FROM tenants t WHERE t.slug = '%s'\n",
			escapeSQL(e.name), escapeSQL(e.sacCode), e.price, e.gstRate, escapeSQL(slug))
	}

	b.WriteString("ON CONFLICT (tenant_id, plan_name) DO NOTHING;\n\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
