package domain

// Transaction is one parsed sales record. Fields mirror the input file
// column order; Amount is always derived, never stored.
type Transaction struct {
	TransactionID string
	Date          string // YYYY-MM-DD, sorts lexicographically
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     float64
	CustomerID    string
	Region        string
}

// Amount returns the monetary value of the transaction.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction augmented with catalog attributes.
// The API fields stay empty and APIRating nil when the catalog has no
// entry for the transaction's product id.
type EnrichedTransaction struct {
	Transaction
	APICategory string
	APIBrand    string
	APIRating   *float64
	APIMatch    bool
}
