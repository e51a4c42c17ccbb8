package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/plan"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleDim.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// =============================================================================
// Plan & Report Rendering
// =============================================================================

// renderOrder formats the publish order as a numbered list.
// Private packages are dimmed and annotated: they keep their place in
// the ordering but a publish run skips them.
func renderOrder(p *plan.Plan) string {
	publishable := make(map[string]bool, len(p.Snapshot.Nodes))
	versions := make(map[string]string, len(p.Snapshot.Nodes))
	for _, n := range p.Snapshot.Nodes {
		publishable[n.Name] = n.Publishable
		versions[n.Name] = n.Version
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Publish order"))
	b.WriteString("\n")
	for i, name := range p.Order {
		line := fmt.Sprintf("%2d. %s", i+1, name)
		if v := versions[name]; v != "" {
			line += styleDim.Render(" @" + v)
		}
		if !publishable[name] {
			line = styleDim.Render(line + "  (private, skipped)")
		} else {
			line = styleValue.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderReport formats the analysis findings. Production cycles are
// errors, everything else is advisory.
func renderReport(r graph.Report) string {
	var b strings.Builder

	if len(r.ProductionCycles) > 0 {
		b.WriteString(styleError.Render(fmt.Sprintf("%s %d production cycle(s) block publishing:", iconError, len(r.ProductionCycles))))
		b.WriteString("\n")
		for _, cycle := range r.ProductionCycles {
			b.WriteString("    " + renderCycle(cycle) + "\n")
		}
	}
	if len(r.DevCycles) > 0 {
		b.WriteString(styleWarning.Render(fmt.Sprintf("%s %d dev-only cycle(s), tolerated:", iconWarning, len(r.DevCycles))))
		b.WriteString("\n")
		for _, cycle := range r.DevCycles {
			b.WriteString("    " + styleDim.Render(renderCycle(cycle)) + "\n")
		}
	}
	for _, w := range r.WildcardDeps {
		b.WriteString(styleWarning.Render(fmt.Sprintf("%s %s depends on %s with wildcard range %q", iconWarning, w.Pkg, w.Dep, w.Version)))
		b.WriteString("\n")
	}
	for _, m := range r.MissingPeers {
		b.WriteString(styleWarning.Render(fmt.Sprintf("%s %s has peer dependency %s with no package in the workspace", iconWarning, m.Pkg, m.Dep)))
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return styleSuccess.Render(iconSuccess+" no findings") + "\n"
	}
	return b.String()
}

func renderCycle(cycle []string) string {
	return strings.Join(cycle, " → ") + " → " + cycle[0]
}
