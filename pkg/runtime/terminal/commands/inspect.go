package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/services/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type InspectCmd struct {
	input  string
	logger zerolog.Logger
}

// NewInspectCmd prints the filter options a run of analyze could use:
// the regions present in the file and the transaction amount range.
func NewInspectCmd(logger zerolog.Logger) *cobra.Command {
	ic := &InspectCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show available filter options for a sales file",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.input, "input", "data/sales_data.txt", "Path to the pipe-delimited sales file")

	return cmd
}

func (ic *InspectCmd) run(cmd *cobra.Command, args []string) error {
	ctx := ic.logger.WithContext(cmd.Context())
	out := cmd.OutOrStdout()

	overview, summary, err := pipeline.Inspect(ctx, ic.input)
	if err != nil {
		return fmt.Errorf("%s", pipeline.StageMessage(err))
	}

	fmt.Fprintln(out, "Filter options available:")
	fmt.Fprintf(out, "  Regions:      %s\n", strings.Join(overview.Regions, ", "))
	fmt.Fprintf(out, "  Amount range: ₹%s - ₹%s\n",
		humanize.FormatFloat("#,###.##", overview.MinAmount),
		humanize.FormatFloat("#,###.##", overview.MaxAmount))
	fmt.Fprintf(out, "  Valid records: %d of %d (invalid: %d)\n",
		summary.FinalCount, summary.TotalInput, summary.Invalid)

	return nil
}
