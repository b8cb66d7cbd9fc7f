// Package render draws a pipeline as terminal columns.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ats-pipeline/internal/pipeline"
)

const (
	defaultStageColor = "#CCCCCC"
	minColumnWidth    = 14
)

var (
	cardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Board renders p as one bordered column per stage, side by side, fitted
// into width terminal cells.
func Board(p *pipeline.Pipeline, width int) string {
	stages := p.Stages()
	if len(stages) == 0 {
		return emptyStyle.Render("No stages configured.")
	}

	// each column adds two border cells
	colWidth := width/len(stages) - 2
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	columns := make([]string, 0, len(stages))
	for _, st := range stages {
		columns = append(columns, column(st, p.Bucket(st.ID), colWidth))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if unassigned := p.Unassigned(); len(unassigned) > 0 {
		names := make([]string, 0, len(unassigned))
		for _, c := range unassigned {
			names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.StageID))
		}
		note := warnStyle.Render(fmt.Sprintf("%d unassigned: ", len(unassigned))) +
			detailStyle.Render(strings.Join(names, ", "))
		out = lipgloss.JoinVertical(lipgloss.Left, out, note)
	}
	return out
}

func column(st pipeline.Stage, candidates []pipeline.Candidate, width int) string {
	color := st.Color
	if color == "" {
		color = defaultStageColor
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%s (%d)", st.Name, len(candidates)))

	lines := []string{header}
	if len(candidates) == 0 {
		lines = append(lines, emptyStyle.Render("empty"))
	}
	for _, c := range candidates {
		lines = append(lines, cardStyle.Render(c.Name))
		lines = append(lines, detailStyle.Render(stars(c.Rating)+" "+c.Source))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func stars(rating int) string {
	rating = pipeline.ClampRating(rating)
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}
