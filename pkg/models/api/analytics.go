package api

// Summary is the overall-figures response.
type Summary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TransactionCount int     `json:"transaction_count"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	DateFrom         string  `json:"date_from"`
	DateTo           string  `json:"date_to"`
	Invalid          int     `json:"invalid"`
	Dropped          int     `json:"dropped"`
}

// Region is one row of the region breakdown response.
type Region struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// ProductRank is one row of the product ranking responses.
type ProductRank struct {
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Customer is one row of the customer profile response.
type Customer struct {
	CustomerID     string   `json:"customer_id"`
	TotalSpent     float64  `json:"total_spent"`
	PurchaseCount  int      `json:"purchase_count"`
	AvgOrderValue  float64  `json:"avg_order_value"`
	ProductsBought []string `json:"products_bought"`
}

// Day is one row of the daily trend response.
type Day struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	UniqueCustomers  int     `json:"unique_customers"`
}

// Trend is the daily trend response with its peak day.
type Trend struct {
	Days []Day `json:"days"`
	Peak *Day  `json:"peak,omitempty"`
}
