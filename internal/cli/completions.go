package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// completeTranscriptDBs provides shell completion for --transcriptdb values.
func completeTranscriptDBs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, db := range liribatch.TranscriptDatabases {
		if strings.HasPrefix(db, toComplete) {
			matches = append(matches, db)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeCloudPaths disables local file completion for arguments that name
// cloud objects; the shell has nothing useful to offer for gs:// paths.
func completeCloudPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
