package domain

// RegionStats aggregates sales for one region.
type RegionStats struct {
	Region           string
	TotalSales       float64
	TransactionCount int
	Percentage       float64 // share of total revenue, rounded to 2 decimals
}

// ProductStats aggregates sales for one product name.
type ProductStats struct {
	ProductName   string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStats aggregates purchases for one customer.
type CustomerStats struct {
	CustomerID     string
	TotalSpent     float64
	PurchaseCount  int
	AvgOrderValue  float64  // rounded to 2 decimals
	ProductsBought []string // distinct product names, lexicographically sorted
}

// DailyStats aggregates sales for one date.
type DailyStats struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the date with the highest aggregate revenue.
// A zero PeakDay (empty Date) means the input set was empty.
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}
