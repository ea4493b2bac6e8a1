package export

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// enrichedHeader is the fixed 12-column layout of the enriched data file.
const enrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|" +
	"API_Category|API_Brand|API_Rating|API_Match"

// WriteEnriched saves enriched transactions as pipe-delimited text.
// Absent enrichment fields render as empty strings and API_Match as a
// boolean literal, so the first eight columns of the output parse back
// into the exact transactions that produced it.
func WriteEnriched(ctx context.Context, path string, transactions []domain.EnrichedTransaction) error {
	logger := zerolog.Ctx(ctx)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enriched data file %q: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to close enriched data file")
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, enrichedHeader)
	for _, tx := range transactions {
		fmt.Fprintln(w, enrichedRow(tx))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write enriched data file %q: %w", path, err)
	}

	logger.Info().Str("path", path).Int("rows", len(transactions)).Msg("enriched data saved")
	return nil
}

func enrichedRow(tx domain.EnrichedTransaction) string {
	rating := ""
	if tx.APIRating != nil {
		rating = strconv.FormatFloat(*tx.APIRating, 'f', -1, 64)
	}
	return strings.Join([]string{
		tx.TransactionID,
		tx.Date,
		tx.ProductID,
		tx.ProductName,
		strconv.Itoa(tx.Quantity),
		strconv.FormatFloat(tx.UnitPrice, 'f', -1, 64),
		tx.CustomerID,
		tx.Region,
		tx.APICategory,
		tx.APIBrand,
		rating,
		strconv.FormatBool(tx.APIMatch),
	}, "|")
}
