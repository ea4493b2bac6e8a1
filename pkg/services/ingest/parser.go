package ingest

import (
	"context"
	"strconv"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const fieldCount = 8

// ParseResult carries the parsed records plus a diagnostic counter for
// lines that never became records (wrong field count, non-numeric
// quantity or price). Dropped lines are distinct from invalid records:
// they were never attempted.
type ParseResult struct {
	Transactions []domain.Transaction
	Dropped      int
}

// ParseLines turns raw pipe-delimited lines into typed transactions.
// Malformed lines degrade to omission, never a panic. Lines with more
// than eight fields keep the first eight; the surplus is ignored.
func ParseLines(ctx context.Context, lines []string) ParseResult {
	logger := zerolog.Ctx(ctx)

	result := ParseResult{}
	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			result.Dropped++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	logger.Info().
		Int("parsed", len(result.Transactions)).
		Int("dropped", result.Dropped).
		Msg("lines parsed")
	return result
}

func parseLine(line string) (domain.Transaction, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < fieldCount {
		return domain.Transaction{}, false
	}

	for i := range fields[:fieldCount] {
		fields[i] = strings.TrimSpace(fields[i])
	}

	// Commas appear inside product names and as thousands separators in
	// the numeric columns; strip them before conversion.
	productName := strings.ReplaceAll(fields[3], ",", "")
	quantityStr := strings.ReplaceAll(fields[4], ",", "")
	unitPriceStr := strings.ReplaceAll(fields[5], ",", "")

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		return domain.Transaction{}, false
	}
	unitPrice, err := strconv.ParseFloat(unitPriceStr, 64)
	if err != nil {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		TransactionID: fields[0],
		Date:          fields[1],
		ProductID:     fields[2],
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    fields[6],
		Region:        fields[7],
	}, true
}
