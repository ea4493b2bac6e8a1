package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// ReportData is everything the text report renders, precomputed so the
// template stays pure presentation.
type ReportData struct {
	GeneratedAt   time.Time
	RecordCount   int
	TotalRevenue  float64
	AvgOrderValue float64
	MinDate       string
	MaxDate       string

	Regions      []domain.RegionStats
	TopProducts  []domain.ProductStats
	TopCustomers []domain.CustomerStats
	Trend        []domain.DailyStats
	Peak         domain.PeakDay
	LowProducts  []domain.ProductStats
	LowThreshold int

	RegionAverages []RegionAverage

	MatchedCount  int
	TotalEnriched int
	SuccessRate   float64
	Unmatched     []string // distinct unmatched product ids, encounter order
}

// RegionAverage is the average transaction value for one region.
type RegionAverage struct {
	Region  string
	Average float64
}

const unmatchedDisplayCap = 10

// BuildReportData assembles the report model from validated and enriched
// transactions. Enrichment never alters financial figures; every number
// here derives from the validated set alone.
func BuildReportData(
	transactions []domain.Transaction,
	enriched []domain.EnrichedTransaction,
	now time.Time,
) ReportData {
	data := ReportData{
		GeneratedAt:  now,
		RecordCount:  len(transactions),
		TotalRevenue: analytics.TotalRevenue(transactions),
		Regions:      analytics.RegionBreakdown(transactions),
		TopProducts:  analytics.TopProducts(transactions, analytics.DefaultTopN),
		Trend:        analytics.DailyTrend(transactions),
		Peak:         analytics.FindPeakDay(transactions),
		LowProducts:  analytics.LowPerformers(transactions, analytics.DefaultLowThreshold),
		LowThreshold: analytics.DefaultLowThreshold,
	}

	if len(transactions) > 0 {
		data.AvgOrderValue = data.TotalRevenue / float64(len(transactions))
		data.MinDate = transactions[0].Date
		data.MaxDate = transactions[0].Date
		for _, tx := range transactions[1:] {
			if tx.Date < data.MinDate {
				data.MinDate = tx.Date
			}
			if tx.Date > data.MaxDate {
				data.MaxDate = tx.Date
			}
		}
	} else {
		data.MinDate = "N/A"
		data.MaxDate = "N/A"
	}

	customers := analytics.CustomerProfiles(transactions)
	if len(customers) > analytics.DefaultTopN {
		customers = customers[:analytics.DefaultTopN]
	}
	data.TopCustomers = customers

	for _, r := range data.Regions {
		avg := 0.0
		if r.TransactionCount > 0 {
			avg = r.TotalSales / float64(r.TransactionCount)
		}
		data.RegionAverages = append(data.RegionAverages, RegionAverage{Region: r.Region, Average: avg})
	}

	data.TotalEnriched = len(enriched)
	seen := make(map[string]struct{})
	for _, tx := range enriched {
		if tx.APIMatch {
			data.MatchedCount++
			continue
		}
		if _, ok := seen[tx.ProductID]; !ok {
			seen[tx.ProductID] = struct{}{}
			data.Unmatched = append(data.Unmatched, tx.ProductID)
		}
	}
	if data.TotalEnriched > 0 {
		data.SuccessRate = float64(data.MatchedCount) / float64(data.TotalEnriched) * 100
	}

	return data
}

// Reporter renders the fixed-width text report.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a report renderer targeting the given writer.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// WriteReport renders the report to a file. The report and the enriched
// data file are independent outputs; a failure here never blocks the
// other write.
func WriteReport(ctx context.Context, path string, data ReportData) error {
	logger := zerolog.Ctx(ctx)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to close report file")
		}
	}()

	if err := NewReporter(f).Render(data); err != nil {
		return fmt.Errorf("failed to render report %q: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("report saved")
	return nil
}

// Render writes the report sections in their fixed order: header, overall
// summary, region table, top products, top customers, daily trend,
// product performance, enrichment summary.
func (r *Reporter) Render(data ReportData) error {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return "₹" + humanize.FormatFloat("#,###.##", v)
		},
		"line": func() string {
			return strings.Repeat("-", 60)
		},
		"banner": func() string {
			return strings.Repeat("=", 60)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"inc": func(i int) int {
			return i + 1
		},
		"extra": func(unmatched []string) int {
			if len(unmatched) > unmatchedDisplayCap {
				return len(unmatched) - unmatchedDisplayCap
			}
			return 0
		},
		"cap": func(unmatched []string) []string {
			if len(unmatched) > unmatchedDisplayCap {
				return unmatched[:unmatchedDisplayCap]
			}
			return unmatched
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(r.writer, data)
}

const reportTemplate = `{{banner}}
               SALES ANALYTICS REPORT
          Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
          Records Processed: {{.RecordCount}}
{{banner}}

OVERALL SUMMARY
{{line}}
Total Revenue:         {{money .TotalRevenue}}
Total Transactions:    {{.RecordCount}}
Average Order Value:   {{money .AvgOrderValue}}
Date Range:            {{.MinDate}} to {{.MaxDate}}

REGION-WISE PERFORMANCE
{{line}}
{{printf "%-15s %-18s %-12s %s" "Region" "Sales" "% of Total" "Transactions"}}
{{line}}
{{range .Regions}}{{printf "%-15s %18s %10.2f%% %10d" .Region (money .TotalSales) .Percentage .TransactionCount}}
{{end}}
TOP {{len .TopProducts}} SELLING PRODUCTS
{{line}}
{{printf "%-6s %-25s %-8s %s" "Rank" "Product Name" "Qty" "Revenue"}}
{{line}}
{{range $i, $p := .TopProducts}}{{printf "%-6d %-25s %-8d %15s" (inc $i) $p.ProductName $p.TotalQuantity (money $p.TotalRevenue)}}
{{end}}
TOP {{len .TopCustomers}} CUSTOMERS
{{line}}
{{printf "%-6s %-15s %-18s %s" "Rank" "Customer ID" "Total Spent" "Orders"}}
{{line}}
{{range $i, $c := .TopCustomers}}{{printf "%-6d %-15s %18s %10d" (inc $i) $c.CustomerID (money $c.TotalSpent) $c.PurchaseCount}}
{{end}}
DAILY SALES TREND
{{line}}
{{printf "%-12s %-18s %-15s %s" "Date" "Revenue" "Transactions" "Unique Customers"}}
{{line}}
{{range .Trend}}{{printf "%-12s %18s %14d %16d" .Date (money .Revenue) .TransactionCount .UniqueCustomers}}
{{end}}
PRODUCT PERFORMANCE ANALYSIS
{{line}}
Peak Sales Day:        {{if .Peak.Date}}{{.Peak.Date}}{{else}}N/A{{end}}
Peak Revenue:          {{money .Peak.Revenue}}
Transactions on Peak:  {{.Peak.TransactionCount}}

{{if .LowProducts}}Low Performing Products (Qty < {{.LowThreshold}}):
{{printf "%-25s %-8s %s" "Product Name" "Qty" "Revenue"}}
{{line}}
{{range .LowProducts}}{{printf "%-25s %-8d %15s" .ProductName .TotalQuantity (money .TotalRevenue)}}
{{end}}{{else}}Low Performing Products: None
{{end}}
Average Transaction Value per Region:
{{line}}
{{range .RegionAverages}}{{printf "%-20s %18s" .Region (money .Average)}}
{{end}}
API ENRICHMENT SUMMARY
{{line}}
Total Products Enriched:  {{.MatchedCount}}/{{.TotalEnriched}}
Success Rate:             {{pct .SuccessRate}}
{{if .Unmatched}}
Products Not Enriched ({{len .Unmatched}}):
{{range cap .Unmatched}}  - {{.}}
{{end}}{{if extra .Unmatched}}  ... and {{extra .Unmatched}} more
{{end}}{{end}}
{{banner}}
               END OF REPORT
{{banner}}
`
