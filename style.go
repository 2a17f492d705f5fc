package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var levelColors = map[string]lipgloss.Color{
	"ERROR": lipgloss.Color("#EF4444"),
	"DEBUG": lipgloss.Color("#06B6D4"),
	"TRACE": lipgloss.Color("#6B7280"),
	"INFO":  lipgloss.Color("#10B981"),
}

// levelStyle colors log level tags when w is a color capable terminal.
func levelStyle(w io.Writer) func(level string) string {
	r := lipgloss.NewRenderer(w)
	styles := make(map[string]lipgloss.Style, len(levelColors))
	for level, color := range levelColors {
		style := r.NewStyle().Foreground(color)
		if level == "ERROR" {
			style = style.Bold(true)
		}
		styles[level] = style
	}
	return func(level string) string {
		if style, ok := styles[level]; ok {
			return style.Render(level)
		}
		return level
	}
}

// replStyles returns the banner and result styles for the repl writing
// to w.
func replStyles(w io.Writer) (banner, result lipgloss.Style) {
	r := lipgloss.NewRenderer(w)
	banner = r.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	result = r.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	return banner, result
}
