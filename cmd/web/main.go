package main

import (
	"fmt"
	"net"
	"os"
	"time"

	handlers "github.com/de-tools/sales-atlas/pkg/handlers/analytics"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/ingest"
	"github.com/de-tools/sales-atlas/pkg/services/pipeline"
	"github.com/de-tools/sales-atlas/pkg/services/validate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	input string
	host  string
	port  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve sales aggregates over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&input, "input", "i", "data/sales_data.txt",
		"Path to the pipe-delimited sales file")
	rootCmd.Flags().StringVar(&host, "host", "localhost", "Address to bind")
	rootCmd.Flags().StringVar(&port, "port", "8080", "Port to listen on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	// The validated set is ingested once at startup; the API is read-only.
	lines, err := ingest.ReadLines(ctx, input)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return pipeline.ErrNoRawLines
	}
	parsed := ingest.ParseLines(ctx, lines)
	if len(parsed.Transactions) == 0 {
		return pipeline.ErrNoParsed
	}
	validated := validate.Apply(ctx, parsed.Transactions, domain.Filter{})
	if len(validated.Valid) == 0 {
		return pipeline.ErrNoValidRecords
	}

	logger.Info().
		Int("valid", validated.Summary.FinalCount).
		Int("invalid", validated.Summary.Invalid).
		Int("dropped", parsed.Dropped).
		Msg("sales data loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analytics: handlers.NewHandler(validated.Valid, validated.Summary, parsed.Dropped),
		},
	})

	return api.Start()
}
