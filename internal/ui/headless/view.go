package headless

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	zoneSourceInput  = "input-source"
	zoneOutputInput  = "input-output"
	zoneRunButton    = "btn-run"
	zoneVerifyButton = "btn-verify"
	zoneStopButton   = "btn-stop"
	zoneQuitButton   = "btn-quit"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	buttonStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	buttonFocusedStyle = buttonStyle.BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10"))

	statusIdleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusRunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m *headlessModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render("File Organizer " + m.buildVersion)

	sourceRow := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render("Source: "),
		zone.Mark(zoneSourceInput, m.inputs[inputSource].View()),
	)
	outputRow := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render("Output: "),
		zone.Mark(zoneOutputInput, m.inputs[inputOutput].View()),
	)

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneRunButton, m.renderButton("Run Organizer", focusRunButton)),
		" ",
		zone.Mark(zoneVerifyButton, m.renderButton("Verify Integrity", focusVerifyButton)),
		" ",
		zone.Mark(zoneStopButton, m.renderButton("Stop", focusStopButton)),
		" ",
		zone.Mark(zoneQuitButton, m.renderButton("Quit", focusQuitButton)),
	)

	status := m.renderStatus()
	if m.errText != "" {
		status = errorStyle.Render(m.errText)
	}

	output := panelStyle.Render(m.logPanel.View())
	help := helpStyle.Render("tab: focus  enter: activate  pgup/pgdn: scroll  q: quit")

	parts := []string{header, sourceRow, outputRow, buttons, status, output, help}
	return zone.Scan(strings.Join(parts, "\n"))
}

func (m *headlessModel) renderButton(label string, focus int) string {
	if m.focus == focus {
		return buttonFocusedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m *headlessModel) renderStatus() string {
	text := "Status: " + m.status
	if m.hasCode && m.lastCode != 0 {
		text += fmt.Sprintf(" (exit code %d)", m.lastCode)
	}
	switch m.kind {
	case statusRunning:
		return statusRunningStyle.Render(text)
	case statusOK:
		return statusOKStyle.Render(text)
	case statusError:
		return statusErrorStyle.Render(text)
	default:
		return statusIdleStyle.Render(text)
	}
}
