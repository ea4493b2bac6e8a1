package validate

import (
	"context"
	"sort"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Result is one validate-and-filter pass over parsed transactions.
// Valid is a fresh slice; the input is never mutated.
type Result struct {
	Valid    []domain.Transaction
	Summary  domain.ValidationSummary
	Overview domain.FilterOverview
}

// Apply validates parsed transactions in a fixed predicate order and then
// applies the optional filter. Validation failures increment Invalid and
// stop at the first failed predicate; filter exclusions are tracked
// separately and are not errors. The pass is idempotent for identical
// input and filter.
func Apply(ctx context.Context, transactions []domain.Transaction, filter domain.Filter) Result {
	logger := zerolog.Ctx(ctx)

	res := Result{
		Summary: domain.ValidationSummary{TotalInput: len(transactions)},
	}

	regions := make(map[string]struct{})
	amountsSeen := false

	for _, tx := range transactions {
		// Overview amount range only considers records with positive
		// quantity and price, matching what a filter could ever select.
		if tx.Quantity > 0 && tx.UnitPrice > 0 {
			amount := tx.Amount()
			if !amountsSeen || amount < res.Overview.MinAmount {
				res.Overview.MinAmount = amount
			}
			if !amountsSeen || amount > res.Overview.MaxAmount {
				res.Overview.MaxAmount = amount
			}
			amountsSeen = true
		}

		if !isValid(tx) {
			res.Summary.Invalid++
			continue
		}

		regions[tx.Region] = struct{}{}

		if filter.Region != "" && tx.Region != filter.Region {
			res.Summary.FilteredByRegion++
			continue
		}
		if filter.HasAmountBound() {
			amount := tx.Amount()
			if (filter.MinAmount != nil && amount < *filter.MinAmount) ||
				(filter.MaxAmount != nil && amount > *filter.MaxAmount) {
				res.Summary.FilteredByAmount++
				continue
			}
		}

		res.Valid = append(res.Valid, tx)
	}

	res.Overview.Regions = make([]string, 0, len(regions))
	for region := range regions {
		res.Overview.Regions = append(res.Overview.Regions, region)
	}
	sort.Strings(res.Overview.Regions)

	res.Summary.FinalCount = len(res.Valid)

	logger.Info().
		Int("total_input", res.Summary.TotalInput).
		Int("invalid", res.Summary.Invalid).
		Int("filtered_by_region", res.Summary.FilteredByRegion).
		Int("filtered_by_amount", res.Summary.FilteredByAmount).
		Int("final_count", res.Summary.FinalCount).
		Msg("transactions validated")
	return res
}

// isValid checks the business-rule predicates in their fixed order.
// Field presence is guaranteed by the record type at the parse boundary,
// so the first historical predicate has nothing left to check.
func isValid(tx domain.Transaction) bool {
	switch {
	case tx.Quantity <= 0:
		return false
	case tx.UnitPrice <= 0:
		return false
	case !strings.HasPrefix(tx.TransactionID, "T"):
		return false
	case !strings.HasPrefix(tx.ProductID, "P"):
		return false
	case !strings.HasPrefix(tx.CustomerID, "C"):
		return false
	case tx.Region == "":
		return false
	}
	return true
}
