package analytics

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, date, productID, product string, qty int, price float64, customerID, region string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   product,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customerID,
		Region:        region,
	}
}

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Mouse", 5, 500, "C002", "South"),
		tx("T003", "2024-12-02", "P101", "Laptop", 1, 45000, "C001", "North"),
		tx("T004", "2024-12-02", "P103", "Keyboard", 3, 1500, "C003", "East"),
		tx("T005", "2024-12-03", "P102", "Mouse", 8, 500, "C002", "South"),
		tx("T006", "2024-12-03", "P104", "Webcam", 2, 3000, "C001", "North"),
	}
}

func TestTotalRevenue(t *testing.T) {
	total := TotalRevenue(sampleTransactions())
	// 90000 + 2500 + 45000 + 4500 + 4000 + 6000
	assert.InDelta(t, 152000.0, total, 1e-9)
}

func TestTotalRevenue_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalRevenue(nil))
}

func TestRegionBreakdown_SumsMatchTotals(t *testing.T) {
	transactions := sampleTransactions()
	breakdown := RegionBreakdown(transactions)

	var salesSum float64
	var countSum int
	for _, r := range breakdown {
		salesSum += r.TotalSales
		countSum += r.TransactionCount
	}

	assert.InDelta(t, TotalRevenue(transactions), salesSum, 1e-9)
	assert.Equal(t, len(transactions), countSum)
}

func TestRegionBreakdown_OrderAndPercentages(t *testing.T) {
	breakdown := RegionBreakdown(sampleTransactions())

	require.Len(t, breakdown, 3)
	assert.Equal(t, "North", breakdown[0].Region)
	assert.InDelta(t, 141000.0, breakdown[0].TotalSales, 1e-9)
	for i := 1; i < len(breakdown); i++ {
		assert.LessOrEqual(t, breakdown[i].TotalSales, breakdown[i-1].TotalSales)
	}

	// 141000 / 152000 * 100 = 92.7631..., rounded to 2 decimals.
	assert.Equal(t, 92.76, breakdown[0].Percentage)
}

func TestRegionBreakdown_TieBrokenByEncounterOrder(t *testing.T) {
	transactions := []domain.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "West"),
		tx("T002", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "East"),
	}

	breakdown := RegionBreakdown(transactions)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "West", breakdown[0].Region)
	assert.Equal(t, "East", breakdown[1].Region)
}

func TestRegionBreakdown_ZeroRevenueMeansZeroPercentages(t *testing.T) {
	// A validated set always has positive amounts; this guards the
	// division anyway.
	breakdown := RegionBreakdown(nil)
	assert.Empty(t, breakdown)
}

func TestTopProducts_RankedByQuantityNotRevenue(t *testing.T) {
	top := TopProducts(sampleTransactions(), DefaultTopN)

	require.NotEmpty(t, top)
	// Mouse sold 13 units, Laptop only 3 but at far higher revenue.
	assert.Equal(t, "Mouse", top[0].ProductName)
	assert.Equal(t, 13, top[0].TotalQuantity)
	assert.InDelta(t, 6500.0, top[0].TotalRevenue, 1e-9)
}

func TestTopProducts_TruncatesToN(t *testing.T) {
	top := TopProducts(sampleTransactions(), 2)
	assert.Len(t, top, 2)
}

func TestTopProducts_TieBrokenByEncounterOrder(t *testing.T) {
	transactions := []domain.Transaction{
		tx("T001", "2024-12-01", "P101", "Charger", 3, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Cable", 3, 100, "C001", "North"),
	}

	top := TopProducts(transactions, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Charger", top[0].ProductName)
	assert.Equal(t, "Cable", top[1].ProductName)
}

func TestLowPerformers_AscendingBelowThreshold(t *testing.T) {
	low := LowPerformers(sampleTransactions(), DefaultLowThreshold)

	// Laptop (3), Keyboard (3), Webcam (2) are below 10; Mouse (13) is not.
	require.Len(t, low, 3)
	assert.Equal(t, "Webcam", low[0].ProductName)
	for i := 1; i < len(low); i++ {
		assert.GreaterOrEqual(t, low[i].TotalQuantity, low[i-1].TotalQuantity)
		assert.Less(t, low[i].TotalQuantity, DefaultLowThreshold)
	}
}

func TestTopAndLowAreDisjointUnderDefaults(t *testing.T) {
	transactions := sampleTransactions()
	low := LowPerformers(transactions, DefaultLowThreshold)

	lowNames := make(map[string]struct{})
	for _, p := range low {
		lowNames[p.ProductName] = struct{}{}
	}

	// Products at or above the threshold never appear as low performers.
	for _, p := range TopProducts(transactions, DefaultTopN) {
		if p.TotalQuantity >= DefaultLowThreshold {
			_, ok := lowNames[p.ProductName]
			assert.False(t, ok, "product %q in both rankings", p.ProductName)
		}
	}
}

func TestCustomerProfiles(t *testing.T) {
	profiles := CustomerProfiles(sampleTransactions())

	require.Len(t, profiles, 3)
	// C001 spent 90000 + 45000 + 6000 = 141000.
	assert.Equal(t, "C001", profiles[0].CustomerID)
	assert.InDelta(t, 141000.0, profiles[0].TotalSpent, 1e-9)
	assert.Equal(t, 3, profiles[0].PurchaseCount)
	assert.Equal(t, 47000.0, profiles[0].AvgOrderValue)
	assert.Equal(t, []string{"Laptop", "Webcam"}, profiles[0].ProductsBought)

	for i := 1; i < len(profiles); i++ {
		assert.LessOrEqual(t, profiles[i].TotalSpent, profiles[i-1].TotalSpent)
	}
}

func TestDailyTrend_SortedAscendingWithUniqueCustomers(t *testing.T) {
	trend := DailyTrend(sampleTransactions())

	require.Len(t, trend, 3)
	for i := 1; i < len(trend); i++ {
		assert.Less(t, trend[i-1].Date, trend[i].Date)
	}

	assert.Equal(t, "2024-12-01", trend[0].Date)
	assert.InDelta(t, 92500.0, trend[0].Revenue, 1e-9)
	assert.Equal(t, 2, trend[0].TransactionCount)
	assert.Equal(t, 2, trend[0].UniqueCustomers)

	// Two transactions by different customers on 2024-12-03.
	assert.Equal(t, 2, trend[2].UniqueCustomers)
}

func TestFindPeakDay_MatchesTrendMaximum(t *testing.T) {
	transactions := sampleTransactions()
	peak := FindPeakDay(transactions)

	trend := DailyTrend(transactions)
	var maxRevenue float64
	for _, day := range trend {
		if day.Revenue > maxRevenue {
			maxRevenue = day.Revenue
		}
	}

	assert.Equal(t, "2024-12-01", peak.Date)
	assert.InDelta(t, maxRevenue, peak.Revenue, 1e-9)
	assert.Equal(t, 2, peak.TransactionCount)
}

func TestFindPeakDay_TieGoesToEarliestDate(t *testing.T) {
	transactions := []domain.Transaction{
		tx("T001", "2024-12-02", "P101", "Laptop", 1, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "North"),
	}

	peak := FindPeakDay(transactions)
	assert.Equal(t, "2024-12-01", peak.Date)
}

func TestEmptyInputIdentities(t *testing.T) {
	assert.Equal(t, 0.0, TotalRevenue(nil))
	assert.Empty(t, RegionBreakdown(nil))
	assert.Empty(t, TopProducts(nil, DefaultTopN))
	assert.Empty(t, LowPerformers(nil, DefaultLowThreshold))
	assert.Empty(t, CustomerProfiles(nil))
	assert.Empty(t, DailyTrend(nil))
	assert.Equal(t, domain.PeakDay{}, FindPeakDay(nil))
}
