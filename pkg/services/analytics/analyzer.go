package analytics

import (
	"math"
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	// DefaultTopN bounds the top-selling product ranking.
	DefaultTopN = 5
	// DefaultLowThreshold marks products as low performers when their
	// total sold quantity falls strictly below it.
	DefaultLowThreshold = 10
)

// TotalRevenue sums the derived amount over all transactions. It defines
// the denominator for every percentage elsewhere; an empty set yields 0.
func TotalRevenue(transactions []domain.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		total += tx.Amount()
	}
	return total
}

// RegionBreakdown groups transactions by region, ordered by descending
// total sales with first-seen order breaking ties. Percentages are shares
// of total revenue rounded to 2 decimals; a zero total makes every
// percentage 0 rather than a division error.
func RegionBreakdown(transactions []domain.Transaction) []domain.RegionStats {
	totalRevenue := TotalRevenue(transactions)

	index := make(map[string]int)
	var stats []domain.RegionStats
	for _, tx := range transactions {
		i, ok := index[tx.Region]
		if !ok {
			i = len(stats)
			index[tx.Region] = i
			stats = append(stats, domain.RegionStats{Region: tx.Region})
		}
		stats[i].TotalSales += tx.Amount()
		stats[i].TransactionCount++
	}

	for i := range stats {
		if totalRevenue > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / totalRevenue * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

// groupProducts builds per-product quantity and revenue totals in
// encounter order.
func groupProducts(transactions []domain.Transaction) []domain.ProductStats {
	index := make(map[string]int)
	var stats []domain.ProductStats
	for _, tx := range transactions {
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, domain.ProductStats{ProductName: tx.ProductName})
		}
		stats[i].TotalQuantity += tx.Quantity
		stats[i].TotalRevenue += tx.Amount()
	}
	return stats
}

// TopProducts returns at most n products ranked by descending total
// quantity sold (not revenue), ties broken by encounter order.
func TopProducts(transactions []domain.Transaction, n int) []domain.ProductStats {
	stats := groupProducts(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns every product whose total quantity is strictly
// below threshold, ordered by ascending quantity.
func LowPerformers(transactions []domain.Transaction, threshold int) []domain.ProductStats {
	grouped := groupProducts(transactions)
	var low []domain.ProductStats
	for _, p := range grouped {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})
	return low
}

// CustomerProfiles groups purchases by customer, ordered by descending
// total spent. Product lists are distinct and lexicographically sorted.
func CustomerProfiles(transactions []domain.Transaction) []domain.CustomerStats {
	index := make(map[string]int)
	products := make(map[string]map[string]struct{})
	var stats []domain.CustomerStats
	for _, tx := range transactions {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(stats)
			index[tx.CustomerID] = i
			stats = append(stats, domain.CustomerStats{CustomerID: tx.CustomerID})
			products[tx.CustomerID] = make(map[string]struct{})
		}
		stats[i].TotalSpent += tx.Amount()
		stats[i].PurchaseCount++
		products[tx.CustomerID][tx.ProductName] = struct{}{}
	}

	for i := range stats {
		names := make([]string, 0, len(products[stats[i].CustomerID]))
		for name := range products[stats[i].CustomerID] {
			names = append(names, name)
		}
		sort.Strings(names)
		stats[i].ProductsBought = names
		stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})
	return stats
}

// DailyTrend groups transactions by date, ordered ascending. Dates are
// zero-padded YYYY-MM-DD strings, so lexicographic order is
// chronological.
func DailyTrend(transactions []domain.Transaction) []domain.DailyStats {
	index := make(map[string]int)
	customers := make(map[string]map[string]struct{})
	var stats []domain.DailyStats
	for _, tx := range transactions {
		i, ok := index[tx.Date]
		if !ok {
			i = len(stats)
			index[tx.Date] = i
			stats = append(stats, domain.DailyStats{Date: tx.Date})
			customers[tx.Date] = make(map[string]struct{})
		}
		stats[i].Revenue += tx.Amount()
		stats[i].TransactionCount++
		customers[tx.Date][tx.CustomerID] = struct{}{}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[stats[i].Date])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

// FindPeakDay returns the date with the highest revenue. Revenue ties go
// to the earliest date in the ascending trend; an empty input yields the
// zero PeakDay.
func FindPeakDay(transactions []domain.Transaction) domain.PeakDay {
	trend := DailyTrend(transactions)
	if len(trend) == 0 {
		return domain.PeakDay{}
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}
	return domain.PeakDay{
		Date:             peak.Date,
		Revenue:          peak.Revenue,
		TransactionCount: peak.TransactionCount,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
