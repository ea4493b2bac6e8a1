package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/catalog"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	configPath     string
	input          string
	enrichedOut    string
	reportOut      string
	region         string
	minAmount      float64
	maxAmount      float64
	catalogURL     string
	catalogTimeout time.Duration
	logger         zerolog.Logger
}

func NewAnalyzeCmd(logger zerolog.Logger) *cobra.Command {
	defaults := config.Default()
	ac := &AnalyzeCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full sales analytics pipeline",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to a run configuration file")
	cmd.Flags().StringVar(&ac.input, "input", defaults.Input, "Path to the pipe-delimited sales file")
	cmd.Flags().StringVar(&ac.enrichedOut, "enriched-out", defaults.EnrichedOutput, "Path for the enriched data file")
	cmd.Flags().StringVar(&ac.reportOut, "report-out", defaults.ReportOutput, "Path for the text report")
	cmd.Flags().StringVar(&ac.region, "region", "", "Only keep transactions from this region")
	cmd.Flags().Float64Var(&ac.minAmount, "min-amount", 0, "Only keep transactions with amount >= this bound")
	cmd.Flags().Float64Var(&ac.maxAmount, "max-amount", 0, "Only keep transactions with amount <= this bound")
	cmd.Flags().StringVar(&ac.catalogURL, "catalog-url", defaults.CatalogURL, "Base URL of the product catalog")
	cmd.Flags().DurationVar(&ac.catalogTimeout, "catalog-timeout", defaults.CatalogTimeout, "Catalog fetch timeout")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx := ac.logger.WithContext(cmd.Context())
	out := cmd.OutOrStdout()

	cfg := config.Default()
	if ac.configPath != "" {
		loaded, err := config.LoadConfig(ac.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("input") || ac.configPath == "" {
		cfg.Input = ac.input
	}
	if cmd.Flags().Changed("enriched-out") || ac.configPath == "" {
		cfg.EnrichedOutput = ac.enrichedOut
	}
	if cmd.Flags().Changed("report-out") || ac.configPath == "" {
		cfg.ReportOutput = ac.reportOut
	}
	if cmd.Flags().Changed("catalog-url") {
		cfg.CatalogURL = ac.catalogURL
	}
	if cmd.Flags().Changed("catalog-timeout") {
		cfg.CatalogTimeout = ac.catalogTimeout
	}

	// Bounds count only when the flag was given, so an explicit 0 is a
	// real bound rather than "unset".
	filter := domain.Filter{Region: ac.region}
	if cmd.Flags().Changed("min-amount") {
		v := ac.minAmount
		filter.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v := ac.maxAmount
		filter.MaxAmount = &v
	}

	result, err := pipeline.Run(ctx, pipeline.Options{
		Input:          cfg.Input,
		EnrichedOutput: cfg.EnrichedOutput,
		ReportOutput:   cfg.ReportOutput,
		Filter:         filter,
		Catalog: catalog.NewClient(catalog.Options{
			BaseURL: cfg.CatalogURL,
			Timeout: cfg.CatalogTimeout,
		}),
	})
	if err != nil {
		return fmt.Errorf("%s", pipeline.StageMessage(err))
	}

	fmt.Fprintln(out, "Pipeline complete.")
	fmt.Fprintf(out, "  Valid transactions:   %d\n", result.Summary.FinalCount)
	fmt.Fprintf(out, "  Invalid records:      %d\n", result.Summary.Invalid)
	fmt.Fprintf(out, "  Malformed lines:      %d\n", result.Dropped)
	fmt.Fprintf(out, "  Filtered by region:   %d\n", result.Summary.FilteredByRegion)
	fmt.Fprintf(out, "  Filtered by amount:   %d\n", result.Summary.FilteredByAmount)
	fmt.Fprintf(out, "  Total revenue:        ₹%s\n", humanize.FormatFloat("#,###.##", result.Report.TotalRevenue))
	if result.EnrichedWriteErr == nil {
		fmt.Fprintf(out, "  Enriched data:        %s\n", cfg.EnrichedOutput)
	} else {
		fmt.Fprintf(out, "  Enriched data:        FAILED (%v)\n", result.EnrichedWriteErr)
	}
	if result.ReportWriteErr == nil {
		fmt.Fprintf(out, "  Report:               %s\n", cfg.ReportOutput)
	} else {
		fmt.Fprintf(out, "  Report:               FAILED (%v)\n", result.ReportWriteErr)
	}

	if result.EnrichedWriteErr != nil || result.ReportWriteErr != nil {
		return fmt.Errorf("one or more output files could not be written")
	}
	return nil
}
