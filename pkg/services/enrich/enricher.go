package enrich

import (
	"context"
	"strconv"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Result carries the enriched transactions plus the aggregate match rate.
type Result struct {
	Transactions []domain.EnrichedTransaction
	MatchedCount int
	MatchRate    float64 // matched / total * 100, 0 for an empty input
}

// Enrich matches each transaction's numeric product-id suffix (digits
// after the leading P) against the catalog. Non-conforming ids and
// catalog misses yield APIMatch=false with every API field absent. Each
// transaction is enriched exactly once; the input is never mutated.
func Enrich(ctx context.Context, transactions []domain.Transaction, catalog domain.Catalog) Result {
	logger := zerolog.Ctx(ctx)

	res := Result{
		Transactions: make([]domain.EnrichedTransaction, 0, len(transactions)),
	}

	for _, tx := range transactions {
		enriched := domain.EnrichedTransaction{Transaction: tx}

		if id, ok := numericID(tx.ProductID); ok {
			if product, found := catalog[id]; found {
				rating := product.Rating
				enriched.APICategory = product.Category
				enriched.APIBrand = product.Brand
				enriched.APIRating = &rating
				enriched.APIMatch = true
				res.MatchedCount++
			}
		}

		res.Transactions = append(res.Transactions, enriched)
	}

	if len(transactions) > 0 {
		res.MatchRate = float64(res.MatchedCount) / float64(len(transactions)) * 100
	}

	logger.Info().
		Int("matched", res.MatchedCount).
		Int("total", len(transactions)).
		Float64("match_rate", res.MatchRate).
		Msg("transactions enriched")
	return res
}

// numericID extracts the catalog key from a product id like "P101".
func numericID(productID string) (int, bool) {
	if !strings.HasPrefix(productID, "P") {
		return 0, false
	}
	id, err := strconv.Atoi(productID[1:])
	if err != nil {
		return 0, false
	}
	return id, true
}
