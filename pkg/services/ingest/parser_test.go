package ingest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func TestParseLines_WellFormedLine(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 0, result.Dropped)

	tx := result.Transactions[0]
	assert.Equal(t, "T001", tx.TransactionID)
	assert.Equal(t, "2024-12-01", tx.Date)
	assert.Equal(t, "P101", tx.ProductID)
	assert.Equal(t, "Laptop", tx.ProductName)
	assert.Equal(t, 2, tx.Quantity)
	assert.Equal(t, 45000.0, tx.UnitPrice)
	assert.Equal(t, "C001", tx.CustomerID)
	assert.Equal(t, "North", tx.Region)
	assert.Equal(t, 90000.0, tx.Amount())
}

func TestParseLines_StripsCommasFromNumericFields(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop|2|45,000|C001|North",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 2, result.Transactions[0].Quantity)
	assert.Equal(t, 45000.0, result.Transactions[0].UnitPrice)
}

func TestParseLines_StripsCommasFromProductName(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop, Pro|1|1000|C001|North",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Laptop Pro", result.Transactions[0].ProductName)
}

func TestParseLines_TrimsFieldWhitespace(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		" T001 | 2024-12-01 | P101 | Laptop | 2 | 45000 | C001 | North ",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "T001", result.Transactions[0].TransactionID)
	assert.Equal(t, "North", result.Transactions[0].Region)
}

func TestParseLines_DropsShortLines(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001",
		"T002|2024-12-01|P102|Mouse|3|500|C002|South",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "T002", result.Transactions[0].TransactionID)
	assert.Equal(t, 1, result.Dropped)
}

func TestParseLines_KeepsFirstEightFieldsOfLongLines(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North|extra|noise",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 0, result.Dropped)
	assert.Equal(t, "North", result.Transactions[0].Region)
}

func TestParseLines_DropsNonNumericQuantityAndPrice(t *testing.T) {
	result := ParseLines(testCtx(), []string{
		"T001|2024-12-01|P101|Laptop|two|45000|C001|North",
		"T002|2024-12-01|P102|Mouse|3|cheap|C002|South",
		"T003|2024-12-01|P103|Keyboard|1|1500|C003|East",
	})

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "T003", result.Transactions[0].TransactionID)
	assert.Equal(t, 2, result.Dropped)
}

func TestParseLines_EmptyInput(t *testing.T) {
	result := ParseLines(testCtx(), nil)
	assert.Empty(t, result.Transactions)
	assert.Equal(t, 0, result.Dropped)
}
