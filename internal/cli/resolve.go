package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqops/liribatch/internal/logging"
	"github.com/seqops/liribatch/internal/tui"
	"github.com/seqops/liribatch/pkg/liribatch"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <phenopacket_path>...",
	Short: "Resolve a cohort without emitting jobs",
	Long: `Resolve matches phenopackets to their VCFs and prints the resolved
table, without emitting any job descriptors. Use it to validate a cohort
before a run, or to see which VCF each sample would get.

Examples:
  # Check a whole cohort
  liribatch resolve 'gs://my-project/cohort/*.json' \
    --vcf 'gs://my-project/vcfs/*.vcf.gz'

  # Machine-readable output
  liribatch resolve 'gs://my-project/cohort/*.json' \
    --vcf 'gs://my-project/vcfs/*.vcf.gz' --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

type resolveFlagValues struct {
	vcf        []string
	sampleID   string
	jsonOutput bool
	timeout    time.Duration
}

var resolveFlags resolveFlagValues

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.ValidArgsFunction = completeCloudPaths

	resolveCmd.Flags().StringArrayVar(&resolveFlags.vcf, "vcf", nil,
		"Cloud path of a VCF or a wildcard pattern (can be specified multiple times)")
	resolveCmd.Flags().StringVarP(&resolveFlags.sampleID, "sample-id", "s", "",
		"Resolve only the phenopacket whose subject id matches")
	resolveCmd.Flags().BoolVar(&resolveFlags.jsonOutput, "json", false,
		"Emit the resolved table as JSON on stdout")
	resolveCmd.Flags().DurationVar(&resolveFlags.timeout, "timeout", 10*time.Minute,
		"Abort if resolution has not finished in this long")

	if err := resolveCmd.MarkFlagRequired("vcf"); err != nil {
		panic(err)
	}
}

// resolvedRow is the JSON shape of one resolved table row.
type resolvedRow struct {
	SampleID        string `json:"sample_id"`
	PhenopacketPath string `json:"phenopacket_path"`
	VCFPath         string `json:"vcf_path"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg := &liribatch.RunConfig{
		PhenopacketPaths: args,
		VCFPaths:         resolveFlags.vcf,
		SampleID:         resolveFlags.sampleID,
		Verbose:          verbose,
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveFlags.timeout)
	defer cancel()

	result, err := resolveCohort(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if resolveFlags.jsonOutput {
		rows := make([]resolvedRow, 0, len(result.Entries))
		for _, e := range result.Entries {
			rows = append(rows, resolvedRow{
				SampleID:        e.SampleID,
				PhenopacketPath: e.PhenopacketPath,
				VCFPath:         e.VCFPath,
			})
		}
		return printJSON(rows)
	}

	fmt.Fprintln(os.Stdout, tui.RenderResolutionTable(result.Entries))
	logger.Info("Resolved %d sample(s)", len(result.Entries))
	return nil
}
