package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

func MapRegionStatsDomainToApi(r domain.RegionStats) api.Region {
	return api.Region{
		Region:           r.Region,
		TotalSales:       r.TotalSales,
		TransactionCount: r.TransactionCount,
		Percentage:       r.Percentage,
	}
}

func MapProductStatsDomainToApi(p domain.ProductStats) api.ProductRank {
	return api.ProductRank{
		ProductName:   p.ProductName,
		TotalQuantity: p.TotalQuantity,
		TotalRevenue:  p.TotalRevenue,
	}
}

func MapCustomerStatsDomainToApi(c domain.CustomerStats) api.Customer {
	return api.Customer{
		CustomerID:     c.CustomerID,
		TotalSpent:     c.TotalSpent,
		PurchaseCount:  c.PurchaseCount,
		AvgOrderValue:  c.AvgOrderValue,
		ProductsBought: c.ProductsBought,
	}
}

func MapDailyStatsDomainToApi(d domain.DailyStats) api.Day {
	return api.Day{
		Date:             d.Date,
		Revenue:          d.Revenue,
		TransactionCount: d.TransactionCount,
		UniqueCustomers:  d.UniqueCustomers,
	}
}

func MapPeakDayDomainToApi(p domain.PeakDay) *api.Day {
	if p.Date == "" {
		return nil
	}
	return &api.Day{
		Date:             p.Date,
		Revenue:          p.Revenue,
		TransactionCount: p.TransactionCount,
	}
}
