package headless

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"organizer-gui/internal/runtime"
)

func (m *headlessModel) startOrganizerCmd() tea.Cmd {
	source := strings.TrimSpace(m.inputs[inputSource].Value())
	output := strings.TrimSpace(m.inputs[inputOutput].Value())
	m.errText = ""
	m.output = ""
	m.hasCode = false

	script := m.organizeScript
	return func() tea.Msg {
		err := runtime.StartOrganize(m.organizer, script, source, output, m.pipelineHooks())
		return startResultMsg{err: err}
	}
}

func (m *headlessModel) startVerifyCmd() tea.Cmd {
	output := strings.TrimSpace(m.inputs[inputOutput].Value())
	m.errText = ""
	m.output = ""
	m.hasCode = false

	script := m.verifyScript
	return func() tea.Msg {
		err := runtime.StartVerify(m.verifier, script, output, m.pipelineHooks())
		return startResultMsg{err: err}
	}
}

// pipelineHooks forwards controller callbacks into the Bubble Tea message
// loop. The hooks run on the controller goroutine, so everything goes
// through buffered channels or program.Send.
func (m *headlessModel) pipelineHooks() runtime.Hooks {
	return runtime.Hooks{
		OnOutput: func(text string) {
			select {
			case m.outCh <- text:
			default:
				select {
				case <-m.outCh:
				default:
				}
				m.outCh <- text
			}
		},
		OnStatus: func(status string) {
			select {
			case m.statusCh <- status:
			default:
				select {
				case <-m.statusCh:
				default:
				}
				m.statusCh <- status
			}
		},
		OnDone: func(code int) {
			if m.program != nil {
				m.program.Send(runDoneMsg{code: code})
			}
		},
	}
}

func (m *headlessModel) stopRuns() {
	m.organizer.Stop()
	m.verifier.Stop()
}

func (m *headlessModel) anyRunning() bool {
	return m.organizer.IsRunning() || m.verifier.IsRunning()
}

func (m *headlessModel) cleanup() {
	m.cleanupOnce.Do(func() {
		m.logger.Debug("headless cleanup started")
		if m.rootCancel != nil {
			m.rootCancel()
		}
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		m.organizer.Stop()
		m.verifier.Stop()
		m.logger.Debug("headless cleanup complete")
		_ = m.logger.Close()
	})
}
