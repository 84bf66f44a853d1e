package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

const highlightMarker = "▶"

var (
	codeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(core.ColorPath.Hex())).
			Padding(0, 1)
	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	highlightStyle  = lipgloss.NewStyle().
			Background(lipgloss.Color(core.ColorHighlight.Hex())).
			Foreground(lipgloss.Color("0")).
			Bold(true)
)

// renderCode draws the level program with line numbers and marks the
// highlighted line. A negative highlight marks nothing.
func renderCode(source []string, highlight int) string {
	if len(source) == 0 {
		return codeBoxStyle.Render(lineNumberStyle.Render("(no code)"))
	}

	digits := len(fmt.Sprint(len(source)))
	lines := make([]string, len(source))
	for i, text := range source {
		num := lineNumberStyle.Render(fmt.Sprintf("%*d", digits, i+1))
		if i == highlight {
			lines[i] = fmt.Sprintf("%s %s %s", highlightMarker, num, highlightStyle.Render(text))
			continue
		}
		lines[i] = fmt.Sprintf("  %s %s", num, text)
	}
	return codeBoxStyle.Render(strings.Join(lines, "\n"))
}
