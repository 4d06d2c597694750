package tui

import (
	"fmt"
	"strings"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// RenderResolutionTable renders the resolved cohort as an aligned
// three-column table. Colors follow the NO_COLOR convention via lipgloss'
// own terminal detection.
func RenderResolutionTable(entries []liribatch.ResolvedEntry) string {
	headers := [3]string{"SAMPLE", "PHENOPACKET", "VCF"}

	widths := [3]int{len(headers[0]), len(headers[1]), len(headers[2])}
	for _, e := range entries {
		widths[0] = max(widths[0], len(e.SampleID))
		widths[1] = max(widths[1], len(e.PhenopacketPath))
		widths[2] = max(widths[2], len(e.VCFPath))
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(formatRow(headers, widths)))
	b.WriteString("\n")
	for _, e := range entries {
		row := [3]string{e.SampleID, e.PhenopacketPath, e.VCFPath}
		b.WriteString(TableCellStyle.Render(formatRow(row, widths)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%d sample(s) resolved", len(entries)))
	return b.String()
}

func formatRow(cells [3]string, widths [3]int) string {
	return fmt.Sprintf("%-*s  %-*s  %-*s",
		widths[0], cells[0], widths[1], cells[1], widths[2], cells[2])
}
