package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var forceLipglossColorOnce sync.Once

func ensureLipglossColorOutput() {
	forceLipglossColorOnce.Do(func() {
		lipgloss.SetColorProfile(termenv.TrueColor)
	})
}

func shouldPrettyPrint() bool {
	term := strings.TrimSpace(os.Getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

// FormatEventANSI renders a single log event with terminal styling,
// preserving ANSI color sequences. The GUI log window parses these
// sequences back into styled rows.
func FormatEventANSI(event Event) string {
	ensureLipglossColorOutput()
	ts := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(event.Time.Format("15:04:05.000"))
	levelLabel, levelStyle := levelBadge(event.Level)
	msg := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render(event.Message)

	line := lipgloss.JoinHorizontal(lipgloss.Center, ts, " ", levelStyle.Render(levelLabel), " ", msg)
	if len(event.Fields) == 0 {
		return line + "\n"
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	valStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	parts := make([]string, 0, len(event.Fields))
	for _, key := range orderedFieldKeys(event.Fields) {
		parts = append(parts, keyStyle.Render(key)+sepStyle.Render("=")+valStyle.Render(formatFieldValue(event.Fields[key])))
	}
	return line + "  " + strings.Join(parts, " ") + "\n"
}

func levelBadge(level slog.Level) (string, lipgloss.Style) {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch {
	case level <= slog.LevelDebug:
		return "DEBUG", base.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240"))
	case level <= slog.LevelInfo:
		return "INFO", base.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("31"))
	case level <= slog.LevelWarn:
		return "WARN", base.Foreground(lipgloss.Color("234")).Background(lipgloss.Color("214"))
	default:
		return "ERROR", base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160"))
	}
}
