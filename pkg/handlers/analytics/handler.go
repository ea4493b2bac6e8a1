package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/rs/zerolog"
)

// Handler serves read-only aggregates over a validated transaction set
// ingested once at startup.
type Handler struct {
	transactions []domain.Transaction
	summary      domain.ValidationSummary
	dropped      int
}

func NewHandler(transactions []domain.Transaction, summary domain.ValidationSummary, dropped int) *Handler {
	return &Handler{
		transactions: transactions,
		summary:      summary,
		dropped:      dropped,
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	total := analytics.TotalRevenue(h.transactions)
	response := api.Summary{
		TotalRevenue:     total,
		TransactionCount: len(h.transactions),
		Invalid:          h.summary.Invalid,
		Dropped:          h.dropped,
	}
	if len(h.transactions) > 0 {
		response.AvgOrderValue = total / float64(len(h.transactions))
		response.DateFrom = h.transactions[0].Date
		response.DateTo = h.transactions[0].Date
		for _, tx := range h.transactions[1:] {
			if tx.Date < response.DateFrom {
				response.DateFrom = tx.Date
			}
			if tx.Date > response.DateTo {
				response.DateTo = tx.Date
			}
		}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode summary")
	}
}

func (h *Handler) GetRegions(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := make([]api.Region, 0)
	for _, stats := range analytics.RegionBreakdown(h.transactions) {
		response = append(response, adapters.MapRegionStatsDomainToApi(stats))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode region breakdown")
	}
}

func (h *Handler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	n := queryInt(r, "n", analytics.DefaultTopN)

	response := make([]api.ProductRank, 0)
	for _, stats := range analytics.TopProducts(h.transactions, n) {
		response = append(response, adapters.MapProductStatsDomainToApi(stats))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Int("n", n).Msg("failed to encode top products")
	}
}

func (h *Handler) GetLowPerformers(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	threshold := queryInt(r, "threshold", analytics.DefaultLowThreshold)

	response := make([]api.ProductRank, 0)
	for _, stats := range analytics.LowPerformers(h.transactions, threshold) {
		response = append(response, adapters.MapProductStatsDomainToApi(stats))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Int("threshold", threshold).Msg("failed to encode low performers")
	}
}

func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := make([]api.Customer, 0)
	for _, stats := range analytics.CustomerProfiles(h.transactions) {
		response = append(response, adapters.MapCustomerStatsDomainToApi(stats))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode customer profiles")
	}
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := api.Trend{Days: make([]api.Day, 0)}
	for _, stats := range analytics.DailyTrend(h.transactions) {
		response.Days = append(response.Days, adapters.MapDailyStatsDomainToApi(stats))
	}
	response.Peak = adapters.MapPeakDayDomainToApi(analytics.FindPeakDay(h.transactions))

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode daily trend")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
