package enrich

import (
	"context"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		101: {ID: 101, Title: "iPhone 9", Category: "smartphones", Brand: "Apple", Rating: 4.69},
		102: {ID: 102, Title: "Perfume Oil", Category: "fragrances", Brand: "Impression", Rating: 4.26},
	}
}

func TestEnrich_MatchCopiesCatalogFields(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "P101", Quantity: 1, UnitPrice: 100},
	}

	res := Enrich(testCtx(), transactions, testCatalog())

	require.Len(t, res.Transactions, 1)
	enriched := res.Transactions[0]
	assert.True(t, enriched.APIMatch)
	assert.Equal(t, "smartphones", enriched.APICategory)
	assert.Equal(t, "Apple", enriched.APIBrand)
	require.NotNil(t, enriched.APIRating)
	assert.Equal(t, 4.69, *enriched.APIRating)
	assert.Equal(t, 1, res.MatchedCount)
	assert.Equal(t, 100.0, res.MatchRate)
}

func TestEnrich_NonConformingProductID(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "X9", Quantity: 1, UnitPrice: 100},
	}

	res := Enrich(testCtx(), transactions, testCatalog())

	require.Len(t, res.Transactions, 1)
	enriched := res.Transactions[0]
	assert.False(t, enriched.APIMatch)
	assert.Empty(t, enriched.APICategory)
	assert.Empty(t, enriched.APIBrand)
	assert.Nil(t, enriched.APIRating)
	assert.Equal(t, 0, res.MatchedCount)
}

func TestEnrich_CatalogMiss(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "P999", Quantity: 1, UnitPrice: 100},
	}

	res := Enrich(testCtx(), transactions, testCatalog())

	require.Len(t, res.Transactions, 1)
	assert.False(t, res.Transactions[0].APIMatch)
}

func TestEnrich_NonNumericSuffix(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "Pabc", Quantity: 1, UnitPrice: 100},
	}

	res := Enrich(testCtx(), transactions, testCatalog())
	assert.False(t, res.Transactions[0].APIMatch)
}

func TestEnrich_EmptyCatalogMatchesNothing(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "P101", Quantity: 1, UnitPrice: 100},
		{TransactionID: "T002", ProductID: "P102", Quantity: 1, UnitPrice: 100},
	}

	res := Enrich(testCtx(), transactions, domain.Catalog{})

	assert.Equal(t, 0, res.MatchedCount)
	assert.Equal(t, 0.0, res.MatchRate)
	for _, enriched := range res.Transactions {
		assert.False(t, enriched.APIMatch)
	}
}

func TestEnrich_MatchRate(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "P101"},
		{TransactionID: "T002", ProductID: "P102"},
		{TransactionID: "T003", ProductID: "P999"},
		{TransactionID: "T004", ProductID: "X9"},
	}

	res := Enrich(testCtx(), transactions, testCatalog())

	assert.Equal(t, 2, res.MatchedCount)
	assert.Equal(t, 50.0, res.MatchRate)
}

func TestEnrich_PreservesFinancialFields(t *testing.T) {
	transactions := []domain.Transaction{
		{TransactionID: "T001", ProductID: "P101", Quantity: 3, UnitPrice: 1500.5},
	}

	res := Enrich(testCtx(), transactions, testCatalog())

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, transactions[0], res.Transactions[0].Transaction)
	assert.Equal(t, transactions[0].Amount(), res.Transactions[0].Amount())
}

func TestEnrich_EmptyInput(t *testing.T) {
	res := Enrich(testCtx(), nil, testCatalog())
	assert.Empty(t, res.Transactions)
	assert.Equal(t, 0.0, res.MatchRate)
}
