package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seqops/liribatch/internal/config"
	"github.com/seqops/liribatch/internal/jobs"
	"github.com/seqops/liribatch/internal/logging"
	"github.com/seqops/liribatch/internal/tui"
	"github.com/seqops/liribatch/pkg/liribatch"
)

var runCmd = &cobra.Command{
	Use:   "run <phenopacket_path>...",
	Short: "Resolve a cohort and emit LIRICAL job descriptors",
	Long: `Run resolves phenopackets against a pool of VCFs and emits one LIRICAL
job descriptor per resolved sample.

The run command:
1. Classifies all cloud paths into a single backend (gs:// or hail-az://)
2. Expands wildcard patterns into concrete object paths
3. Parses each phenopacket for its sample id and referenced VCF name
4. Matches every referenced VCF against the discovered pool
5. Emits one job descriptor per (sample, phenopacket, VCF) triple

Resolution is all-or-nothing: any phenopacket whose VCF cannot be found
aborts the run before a single descriptor is emitted.

Arguments:
  phenopacket_path    Cloud path of a phenopacket JSON file; may contain
                      * wildcards (a * never crosses a "/")

Examples:
  # Run a whole cohort
  liribatch run 'gs://my-project/cohort/*.phenopacket.json' \
    --vcf 'gs://my-project/vcfs/*.vcf.gz' \
    -o gs://my-project/results

  # Run a single sample out of a large cohort
  liribatch run 'gs://my-project/cohort/*.json' \
    --vcf 'gs://my-project/vcfs/*.vcf.gz' \
    -o gs://my-project/results \
    -s HG00096

  # Azure-hosted cohort, machine-readable output
  liribatch run 'hail-az://account/container/cohort/*.json' \
    --vcf 'hail-az://account/container/vcfs/*.vcf.bgz' \
    -o hail-az://account/container/results \
    -d hail-az://account/container/LIRICAL/data \
    -e hail-az://account/container/exomiser/2109_hg38 \
    --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

type runFlagValues struct {
	vcf             []string
	outputDir       string
	liricalDataDir  string
	exomiserDataDir string
	sampleID        string
	minDiff         int
	threshold       float64
	transcriptDB    string
	orphanet        bool
	useGlobal       bool
	jsonOutput      bool
	interactive     bool
	envFile         string
	configDir       string
	timeout         time.Duration
}

var runFlags runFlagValues

func init() {
	rootCmd.AddCommand(runCmd)
	registerRunFlags(runCmd)
	runCmd.ValidArgsFunction = completeCloudPaths
	if err := runCmd.RegisterFlagCompletionFunc("transcriptdb", completeTranscriptDBs); err != nil {
		panic(err)
	}
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&runFlags.vcf, "vcf", nil,
		"Cloud path of a VCF or a wildcard pattern (can be specified multiple times)\n"+
			"Every phenopacket's referenced VCF must match one of the discovered files\n"+
			"Example: --vcf 'gs://my-project/vcfs/*.vcf.gz'")
	cmd.Flags().StringVarP(&runFlags.outputDir, "output-dir", "o", "",
		"Cloud directory where LIRICAL output is written")
	cmd.Flags().StringVarP(&runFlags.liricalDataDir, "lirical-data-dir", "d", "",
		"LIRICAL reference data directory\n"+
			"(default: "+liribatch.DefaultLiricalDataDir+")")
	cmd.Flags().StringVarP(&runFlags.exomiserDataDir, "exomiser-data-dir", "e", "",
		"Exomiser reference data directory\n"+
			"(default: "+liribatch.DefaultExomiserDataDir+")")
	cmd.Flags().StringVarP(&runFlags.sampleID, "sample-id", "s", "",
		"Process only the phenopacket whose subject id matches\n"+
			"Resolution stops as soon as the sample is found")
	cmd.Flags().IntVarP(&runFlags.minDiff, "mindiff", "m", 0,
		"Minimum number of differential diagnoses to show in the HTML output")
	cmd.Flags().Float64VarP(&runFlags.threshold, "threshold", "t", 0,
		"Post-test probability threshold as a percentage")
	cmd.Flags().StringVar(&runFlags.transcriptDB, "transcriptdb", "",
		"Transcript database: UCSC|Ensembl|RefSeq (default: LIRICAL's default)")
	cmd.Flags().BoolVar(&runFlags.orphanet, "orphanet", false,
		"Use annotation data from Orphanet")
	cmd.Flags().BoolVarP(&runFlags.useGlobal, "use-global", "g", false,
		"Run LIRICAL with the --global flag")
	cmd.Flags().BoolVar(&runFlags.jsonOutput, "json", false,
		"Emit job descriptors as JSON on stdout")
	cmd.Flags().BoolVarP(&runFlags.interactive, "interactive", "i", false,
		"Pick the sample to run from a list after resolution\n"+
			"Ignored when stdin/stdout is not a terminal (CI, piped output)")
	cmd.Flags().StringVar(&runFlags.envFile, "env-file", "",
		"Load environment variables from a .env file before resolving settings")
	cmd.Flags().StringVar(&runFlags.configDir, "config", "",
		"Directory containing "+config.ConfigFileName+" with run defaults\n"+
			"(default: current directory; a missing file is not an error)")

	// Catastrophic failure protection, not normal timeout control.
	cmd.Flags().DurationVar(&runFlags.timeout, "timeout", 10*time.Minute,
		"Abort the run if resolution has not finished in this long\n"+
			"Examples: 30s, 5m, 1h30m")

	cmd.MarkFlagsMutuallyExclusive("mindiff", "threshold")
	cmd.MarkFlagsMutuallyExclusive("sample-id", "interactive")
}

// buildRunConfig merges flags, environment and the optional liribatch.yaml
// into a RunConfig. Precedence: flag > environment > config file > default.
func buildRunConfig(cmd *cobra.Command, args []string, verbose bool) (*liribatch.RunConfig, error) {
	if runFlags.envFile != "" {
		if err := godotenv.Load(runFlags.envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w: %w",
				runFlags.envFile, err, liribatch.ErrInvalidConfig)
		}
	} else {
		_ = godotenv.Load()
	}

	configDir := runFlags.configDir
	if configDir == "" {
		configDir = "."
	}
	defaults, err := config.Load(configDir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load %s: %w: %w",
				config.ConfigFileName, err, liribatch.ErrInvalidConfig)
		}
		// Config file is optional unless --config named a directory.
		if runFlags.configDir != "" {
			return nil, fmt.Errorf("no %s in %q: %w",
				config.ConfigFileName, runFlags.configDir, liribatch.ErrInvalidConfig)
		}
		defaults = &config.RunDefaults{}
	}

	cfg := &liribatch.RunConfig{
		PhenopacketPaths: args,
		VCFPaths:         runFlags.vcf,
		OutputDir:        resolveSetting(runFlags.outputDir, "LIRIBATCH_OUTPUT_DIR", defaults.OutputDir, ""),
		LiricalDataDir:   resolveSetting(runFlags.liricalDataDir, "LIRIBATCH_LIRICAL_DATA_DIR", defaults.LiricalDataDir, liribatch.DefaultLiricalDataDir),
		ExomiserDataDir:  resolveSetting(runFlags.exomiserDataDir, "LIRIBATCH_EXOMISER_DATA_DIR", defaults.ExomiserDataDir, liribatch.DefaultExomiserDataDir),
		SampleID:         runFlags.sampleID,
		TranscriptDB:     resolveSetting(runFlags.transcriptDB, "LIRIBATCH_TRANSCRIPTDB", defaults.TranscriptDB, ""),
		Orphanet:         runFlags.orphanet || defaults.Orphanet,
		UseGlobal:        runFlags.useGlobal || defaults.UseGlobal,
		Verbose:          verbose,
	}

	if len(cfg.VCFPaths) == 0 {
		cfg.VCFPaths = defaults.VCF
	}

	// Numeric flags distinguish "unset" from zero via Changed.
	if cmd.Flags().Changed("mindiff") {
		minDiff := runFlags.minDiff
		cfg.MinDiff = &minDiff
	}
	if cmd.Flags().Changed("threshold") {
		threshold := runFlags.threshold
		cfg.Threshold = &threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSetting applies the flag > environment > config file > default
// precedence chain for one string setting.
func resolveSetting(flagValue, envVar, configValue, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}

func runRun(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg, err := buildRunConfig(cmd, args, verbose)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runFlags.timeout)
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling run...")
		cancel()
	}()

	result, err := resolveCohort(ctx, cfg, logger)
	if err != nil {
		return err
	}
	entries := result.Entries

	if runFlags.interactive && tui.IsInteractive() {
		picked, ok := tui.SelectSample(entries)
		if !ok {
			logger.Info("No sample selected, nothing to run")
			return nil
		}
		entries = filterEntries(entries, picked)
	}

	builder := jobs.NewBuilder(jobs.Options{
		OutputDir:       cfg.OutputDir,
		LiricalDataDir:  cfg.LiricalDataDir,
		ExomiserDataDir: cfg.ExomiserDataDir,
		MinDiff:         cfg.MinDiff,
		Threshold:       cfg.Threshold,
		TranscriptDB:    cfg.TranscriptDB,
		Orphanet:        cfg.Orphanet,
		UseGlobal:       cfg.UseGlobal,
	}, entries)
	descriptors := builder.BuildAll(entries)

	if runFlags.jsonOutput {
		return printJSON(descriptors)
	}

	fmt.Fprintln(os.Stderr, tui.RenderResolutionTable(entries))
	for _, d := range descriptors {
		fmt.Printf("%s\t%s\t%s\n", d.RunID, d.SampleID, d.Outputs[1].CloudPath)
	}
	logger.Info("Emitted %d job(s)", len(descriptors))
	return nil
}

// filterEntries keeps only the rows for the given sample id.
func filterEntries(entries []liribatch.ResolvedEntry, sampleID string) []liribatch.ResolvedEntry {
	var kept []liribatch.ResolvedEntry
	for _, e := range entries {
		if e.SampleID == sampleID {
			kept = append(kept, e)
		}
	}
	return kept
}

// printJSON writes v to stdout as indented JSON for pipeline consumption.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
