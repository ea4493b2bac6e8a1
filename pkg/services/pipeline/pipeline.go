package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/export"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/catalog"
	"github.com/de-tools/sales-atlas/pkg/services/enrich"
	"github.com/de-tools/sales-atlas/pkg/services/ingest"
	"github.com/de-tools/sales-atlas/pkg/services/validate"
	"github.com/rs/zerolog"
)

// Early-exit sentinels, one per stage that can produce nothing usable.
var (
	ErrNoRawLines     = errors.New("sales file contains no transaction lines")
	ErrNoParsed       = errors.New("no transactions could be parsed")
	ErrNoValidRecords = errors.New("no valid transactions remain after filtering")
)

// CatalogFetcher is the external catalog collaborator.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) domain.Catalog
}

// Options configure a pipeline run.
type Options struct {
	Input          string
	EnrichedOutput string
	ReportOutput   string
	Filter         domain.Filter
	Catalog        CatalogFetcher
	Now            func() time.Time
}

// Result is everything a completed run produced.
type Result struct {
	Valid    []domain.Transaction
	Enriched []domain.EnrichedTransaction
	Summary  domain.ValidationSummary
	Overview domain.FilterOverview
	Dropped  int
	Report   export.ReportData

	// EnrichedWriteErr and ReportWriteErr are reported independently;
	// one output failing never prevents the other write attempt.
	EnrichedWriteErr error
	ReportWriteErr   error
}

// Run executes the full batch pipeline: read, parse, validate/filter,
// analyze, enrich, write outputs. Stages run synchronously and each
// produces a fresh collection; re-running with the same input file and
// catalog response is idempotent.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewClient(catalog.Options{})
	}

	lines, err := ingest.ReadLines(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoRawLines
	}

	parsed := ingest.ParseLines(ctx, lines)
	if len(parsed.Transactions) == 0 {
		return nil, ErrNoParsed
	}

	validated := validate.Apply(ctx, parsed.Transactions, opts.Filter)
	if len(validated.Valid) == 0 {
		return nil, ErrNoValidRecords
	}

	cat := opts.Catalog.FetchCatalog(ctx)
	enriched := enrich.Enrich(ctx, validated.Valid, cat)

	res := &Result{
		Valid:    validated.Valid,
		Enriched: enriched.Transactions,
		Summary:  validated.Summary,
		Overview: validated.Overview,
		Dropped:  parsed.Dropped,
		Report:   export.BuildReportData(validated.Valid, enriched.Transactions, opts.Now()),
	}

	if opts.EnrichedOutput != "" {
		if err := export.WriteEnriched(ctx, opts.EnrichedOutput, res.Enriched); err != nil {
			logger.Error().Err(err).Msg("failed to save enriched data")
			res.EnrichedWriteErr = err
		}
	}
	if opts.ReportOutput != "" {
		if err := export.WriteReport(ctx, opts.ReportOutput, res.Report); err != nil {
			logger.Error().Err(err).Msg("failed to save report")
			res.ReportWriteErr = err
		}
	}

	logger.Info().
		Int("valid", len(res.Valid)).
		Int("invalid", res.Summary.Invalid).
		Int("dropped", res.Dropped).
		Float64("total_revenue", analytics.TotalRevenue(res.Valid)).
		Msg("pipeline complete")
	return res, nil
}

// Inspect runs only the read/parse/validate stages with no filter and
// returns the overview side channel a filter-selection UI needs.
func Inspect(ctx context.Context, input string) (domain.FilterOverview, domain.ValidationSummary, error) {
	lines, err := ingest.ReadLines(ctx, input)
	if err != nil {
		return domain.FilterOverview{}, domain.ValidationSummary{}, err
	}
	if len(lines) == 0 {
		return domain.FilterOverview{}, domain.ValidationSummary{}, ErrNoRawLines
	}

	parsed := ingest.ParseLines(ctx, lines)
	if len(parsed.Transactions) == 0 {
		return domain.FilterOverview{}, domain.ValidationSummary{}, ErrNoParsed
	}

	validated := validate.Apply(ctx, parsed.Transactions, domain.Filter{})
	return validated.Overview, validated.Summary, nil
}

// StageMessage maps an early-exit sentinel to the user-facing message
// identifying which stage produced nothing.
func StageMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoRawLines):
		return "No data to process: the sales file has no transaction lines."
	case errors.Is(err, ErrNoParsed):
		return "No valid transactions parsed: every line was malformed."
	case errors.Is(err, ErrNoValidRecords):
		return "No valid transactions after filtering: nothing to analyze."
	default:
		return fmt.Sprintf("Pipeline failed: %v.", err)
	}
}
