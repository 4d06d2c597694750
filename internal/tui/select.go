package tui

import (
	"path"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seqops/liribatch/internal/tui/components"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// SelectSample shows the resolved samples and lets the user pick one.
// It returns the chosen sample id, or ok=false if the user quit without
// choosing (or the terminal went away mid-prompt).
func SelectSample(entries []liribatch.ResolvedEntry) (sampleID string, ok bool) {
	options := make([]components.Option, 0, len(entries))
	for _, e := range entries {
		options = append(options, components.Option{
			Label:       e.SampleID,
			Description: path.Base(e.VCFPath),
			Value:       e.SampleID,
		})
	}

	final, err := tea.NewProgram(components.NewSelector("Select a sample to run", options)).Run()
	if err != nil {
		return "", false
	}

	selector, isSelector := final.(components.Selector)
	if !isSelector || !selector.Submitted() {
		return "", false
	}
	return selector.Value(), true
}
