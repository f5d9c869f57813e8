// Command backfill recomputes invoice header totals from their stored lines
// and repairs any drift. Only draft invoices are touched; issued documents
// are immutable.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"detos/internal/config"
	"detos/internal/domain"
	"detos/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	offset := 0
	fixed := 0
	total := 0

	for {
		var invoices []domain.Invoice
		err := db.SelectContext(ctx, &invoices,
			`SELECT * FROM invoices
			 WHERE status = 'draft'
			 ORDER BY created_at
			 LIMIT $1 OFFSET $2`, batchSize, offset)
		if err != nil {
			return fmt.Errorf("querying invoices at offset %d: %w", offset, err)
		}
		if len(invoices) == 0 {
			break
		}

		for i := range invoices {
			inv := &invoices[i]
			total++

			var lines []domain.InvoiceLine
			err := db.SelectContext(ctx, &lines,
				`SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`, inv.ID)
			if err != nil {
				return fmt.Errorf("querying lines for invoice %s: %w", inv.ID, err)
			}

			subTotal := decimal.Zero
			discountTotal := decimal.Zero
			cgstTotal := decimal.Zero
			sgstTotal := decimal.Zero
			igstTotal := decimal.Zero
			grandTotal := decimal.Zero
			for j := range lines {
				l := &lines[j]
				subTotal = subTotal.Add(l.SubAmount)
				discountTotal = discountTotal.Add(l.SubAmount.Sub(l.DiscountedAmount))
				cgstTotal = cgstTotal.Add(l.CGSTAmount)
				sgstTotal = sgstTotal.Add(l.SGSTAmount)
				igstTotal = igstTotal.Add(l.IGSTAmount)
				grandTotal = grandTotal.Add(l.TotalAmount)
			}

			if inv.TotalItems == len(lines) &&
				inv.SubTotal.Equal(subTotal) &&
				inv.DiscountTotal.Equal(discountTotal) &&
				inv.CGSTTotal.Equal(cgstTotal) &&
				inv.SGSTTotal.Equal(sgstTotal) &&
				inv.IGSTTotal.Equal(igstTotal) &&
				inv.GrandTotal.Equal(grandTotal) {
				continue
			}

			_, err = db.ExecContext(ctx,
				`UPDATE invoices
				 SET total_items = $1, sub_total = $2, discount_total = $3,
				     cgst_total = $4, sgst_total = $5, igst_total = $6,
				     grand_total = $7, updated_at = NOW()
				 WHERE id = $8`,
				len(lines), subTotal, discountTotal, cgstTotal, sgstTotal, igstTotal, grandTotal, inv.ID)
			if err != nil {
				return fmt.Errorf("updating invoice %s: %w", inv.ID, err)
			}

			log.Printf("repaired %s: grand total %s -> %s", inv.InvoiceNumber, inv.GrandTotal, grandTotal)
			fixed++
		}

		offset += batchSize
	}

	log.Printf("done: checked %d draft invoices, repaired %d", total, fixed)
	return nil
}
