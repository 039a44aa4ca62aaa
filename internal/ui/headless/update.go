package headless

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"organizer-gui/internal/runstatus"
)

func (m *headlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLogPanel()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case logMsg:
		m.appendOutput(string(msg))
		return m, waitForLog(m.logCh)

	case outputMsg:
		m.appendOutput(string(msg))
		return m, waitForOutput(m.outCh)

	case statusMsg:
		m.applyStatus(string(msg))
		return m, waitForStatus(m.statusCh)

	case startResultMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.running = false
			m.kind = statusError
			return m, nil
		}
		m.running = true
		return m, nil

	case runDoneMsg:
		m.running = false
		m.lastCode = msg.code
		m.hasCode = true
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.running = m.anyRunning()
		return m, tickCmd()
	}

	return m, m.updateFocusedInput(msg)
}

func (m *headlessModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if msg.String() == "q" && m.inputFocused() {
			break
		}
		return m.requestQuit()
	case "tab", "down":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + focusCount) % focusCount)
		return m, nil
	case "enter":
		if cmd, handled := m.activateFocused(); handled {
			return m, cmd
		}
	case "pgup":
		m.logPanel.HalfPageUp()
		return m, nil
	case "pgdown":
		m.logPanel.HalfPageDown()
		return m, nil
	}
	return m, m.updateFocusedInput(msg)
}

func (m *headlessModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionMotion {
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelUp {
		m.logPanel.ScrollUp(3)
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelDown {
		m.logPanel.ScrollDown(3)
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case zone.Get(zoneSourceInput).InBounds(msg):
		m.setFocus(focusSourceInput)
	case zone.Get(zoneOutputInput).InBounds(msg):
		m.setFocus(focusOutputInput)
	case zone.Get(zoneRunButton).InBounds(msg):
		m.setFocus(focusRunButton)
		return m, m.startOrganizerCmd()
	case zone.Get(zoneVerifyButton).InBounds(msg):
		m.setFocus(focusVerifyButton)
		return m, m.startVerifyCmd()
	case zone.Get(zoneStopButton).InBounds(msg):
		m.setFocus(focusStopButton)
		m.stopRuns()
	case zone.Get(zoneQuitButton).InBounds(msg):
		return m.requestQuit()
	}
	return m, nil
}

func (m *headlessModel) activateFocused() (tea.Cmd, bool) {
	switch m.focus {
	case focusRunButton:
		return m.startOrganizerCmd(), true
	case focusVerifyButton:
		return m.startVerifyCmd(), true
	case focusStopButton:
		m.stopRuns()
		return nil, true
	case focusQuitButton:
		_, quitCmd := m.requestQuit()
		return quitCmd, true
	}
	return nil, false
}

func (m *headlessModel) requestQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.anyRunning() {
		m.stopRuns()
		// runDoneMsg finishes the quit once the run winds down.
		return m, nil
	}
	return m, tea.Quit
}

func (m *headlessModel) inputFocused() bool {
	return m.focus == focusSourceInput || m.focus == focusOutputInput
}

func (m *headlessModel) setFocus(next int) {
	m.focus = next
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	switch next {
	case focusSourceInput:
		m.inputs[inputSource].Focus()
	case focusOutputInput:
		m.inputs[inputOutput].Focus()
	}
}

func (m *headlessModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusSourceInput:
		m.inputs[inputSource], cmd = m.inputs[inputSource].Update(msg)
	case focusOutputInput:
		m.inputs[inputOutput], cmd = m.inputs[inputOutput].Update(msg)
	}
	return cmd
}

func (m *headlessModel) applyStatus(status string) {
	m.status = status
	switch runstatus.Key(status) {
	case runstatus.Key(runstatus.Idle), runstatus.Key(runstatus.Stopped):
		m.kind = statusIdle
	case runstatus.Key(runstatus.Organizer.Running), runstatus.Key(runstatus.Integrity.Running):
		m.kind = statusRunning
	case runstatus.Key(runstatus.Organizer.Succeeded), runstatus.Key(runstatus.Integrity.Succeeded):
		m.kind = statusOK
	default:
		m.kind = statusError
	}
}

func (m *headlessModel) appendOutput(chunk string) {
	m.output += chunk
	if len(m.output) > headlessLogLimit {
		m.output = m.output[len(m.output)-headlessLogLimit:]
	}
	atBottom := m.logPanel.AtBottom()
	m.logPanel.SetContent(m.output)
	if atBottom {
		m.logPanel.GotoBottom()
	}
}

func (m *headlessModel) resizeLogPanel() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	height := m.height - nonLogReservedRows
	if height < minLogPanelHeight {
		height = minLogPanelHeight
	}
	if !m.ready {
		m.logPanel = viewport.New(width, height)
		m.logPanel.SetContent(m.output)
		m.ready = true
		return
	}
	m.logPanel.Width = width
	m.logPanel.Height = height
}
