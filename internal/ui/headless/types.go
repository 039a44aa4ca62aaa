package headless

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/runtime"
)

const headlessLogLimit = 200_000

const (
	minLogPanelHeight  = 8
	nonLogReservedRows = 12
)

type logMsg string
type outputMsg string
type statusMsg string
type tickMsg struct{}

type runDoneMsg struct {
	code int
}

type startResultMsg struct {
	err error
}

const (
	inputSource = iota
	inputOutput
	inputCount
)

const (
	focusSourceInput = iota
	focusOutputInput
	focusRunButton
	focusVerifyButton
	focusStopButton
	focusQuitButton
	focusCount
)

type statusKind int

const (
	statusIdle statusKind = iota
	statusRunning
	statusOK
	statusError
)

type modelDeps struct {
	organizer   *runtime.Controller
	verifier    *runtime.Controller
	logger      *logging.Logger
	unsubscribe func()
	rootCancel  context.CancelFunc
	program     *tea.Program
}

type modelChannels struct {
	logCh    chan string
	outCh    chan string
	statusCh chan string
}

type modelRuntime struct {
	running  bool
	quitting bool
	status   string
	kind     statusKind
	lastCode int
	hasCode  bool
}

type headlessModel struct {
	buildVersion   string
	organizeScript string
	verifyScript   string
	modelDeps
	modelChannels
	modelRuntime
	cleanupOnce sync.Once

	inputs   [inputCount]textinput.Model
	focus    int
	output   string
	logPanel viewport.Model
	ready    bool
	width    int
	height   int
	errText  string
}
