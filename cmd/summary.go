package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stevehiehn/provis/internal/pipeline"
	"github.com/stevehiehn/provis/internal/pkgmgr"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func statusStyle(s pipeline.Status) lipgloss.Style {
	switch s {
	case pipeline.Failed:
		return failedStyle
	case pipeline.Skipped:
		return skippedStyle
	default:
		return successStyle
	}
}

// printSummary renders the per-phase outcome of a run to the console.
func printSummary(result *pipeline.Result) {
	fmt.Println(titleStyle.Render("Provisioning summary"))
	for _, p := range result.Phases {
		line := fmt.Sprintf("  %-10s %s", p.Name, statusStyle(p.Status).Render(string(p.Status)))
		if p.Detail != "" {
			line += "  " + dimStyle.Render(p.Detail)
		}
		fmt.Println(line)
	}

	for _, pkg := range result.Packages {
		if pkg.Status != pkgmgr.Failed {
			continue
		}
		fmt.Printf("  %s %s: %s\n", failedStyle.Render("package"), pkg.Package, pkg.Detail)
	}

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Review %q for a detailed record of all operations.\n", LogFileName)
}
