package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = ` _ _      _ _          _       _
| (_)_ _ (_) |__  __ _| |_ __ | |_
| | | '_|| | '_ \/ _' |  _/ _|| ' \
|_|_|_|  |_|_.__/\__,_|\__\__||_||_|`

var rootCmd = &cobra.Command{
	Use:   "liribatch",
	Short: "Batch LIRICAL runs over cloud-hosted cohorts",
	Long: asciiLogo + `

liribatch matches phenopacket JSON files against the single-sample VCFs
they reference, then emits one containerized LIRICAL job per resolved
sample. Inputs live in Google Cloud Storage (gs://) or Azure Blob
Storage (hail-az://); a single run never mixes the two.

Resolution is all-or-nothing: a phenopacket whose VCF cannot be found
fails the whole run before any job is emitted.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Storage path not found
  12 - Phenopacket record invalid
  13 - Referenced VCF not found in the discovered pool
  14 - Storage access denied
  15 - Requested sample id not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for liribatch")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
