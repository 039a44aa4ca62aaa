package headless

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"organizer-gui/internal/config"
	"organizer-gui/internal/logging"
	"organizer-gui/internal/runstatus"
	"organizer-gui/internal/runtime"
)

const (
	logChannelBufferSize    = 512
	outputChannelBufferSize = 512
	statusChannelBufferSize = 16
	updateTickInterval      = 120 * time.Millisecond
	runErrorExitCode        = 1
)

func Run(rootCtx context.Context, buildVersion string, opts config.Options) {
	defer forceDisableMouseTracking()

	if saved, loadErr := config.LoadSettings(); loadErr == nil {
		opts = config.MergeOptionsWithSettings(opts, saved)
	}

	logger := logging.New(false)
	logger.SetDebugEnabled(opts.Debug)
	if err := logger.EnableFilePersistence(0); err != nil {
		logger.Warn("failed to enable file log persistence", logging.Field("error", err))
	}
	logger.SetTerminalOutputEnabled(false)
	logger.Info("starting organizer TUI", logging.Field("version", buildVersion))

	m := newHeadlessModel(rootCtx, buildVersion, opts, logger)
	zone.NewGlobal()
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.program = program
	result, runErr := program.Run()
	model, _ := result.(*headlessModel)
	if model != nil {
		model.cleanup()
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(runErrorExitCode)
	}
}

func forceDisableMouseTracking() {
	_, _ = os.Stdout.WriteString("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l\x1b[?1015l")
}

func newHeadlessModel(rootCtx context.Context, buildVersion string, opts config.Options, logger *logging.Logger) *headlessModel {
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	runCtx, runCancel := context.WithCancel(rootCtx)

	m := &headlessModel{
		buildVersion:   buildVersion,
		organizeScript: opts.OrganizeScript,
		verifyScript:   opts.VerifyScript,
		modelDeps: modelDeps{
			organizer:  runtime.NewController(runCtx, runstatus.Organizer, logger),
			verifier:   runtime.NewController(runCtx, runstatus.Integrity, logger),
			logger:     logger,
			rootCancel: runCancel,
		},
		modelChannels: modelChannels{
			logCh:    make(chan string, logChannelBufferSize),
			outCh:    make(chan string, outputChannelBufferSize),
			statusCh: make(chan string, statusChannelBufferSize),
		},
		modelRuntime: modelRuntime{
			status: runstatus.Idle,
			kind:   statusIdle,
		},
	}

	source := textinput.New()
	source.Placeholder = "source folder"
	source.SetValue(opts.SourceDir)
	source.Focus()
	output := textinput.New()
	output.Placeholder = "output folder"
	output.SetValue(opts.OutputDir)
	m.inputs[inputSource] = source
	m.inputs[inputOutput] = output

	m.unsubscribe = logger.Subscribe(func(event logging.Event) {
		line := logging.FormatEventANSI(event)
		select {
		case m.logCh <- line:
		default:
			select {
			case <-m.logCh:
			default:
			}
			m.logCh <- line
		}
	})

	return m
}

func (m *headlessModel) Init() tea.Cmd {
	return tea.Batch(
		waitForLog(m.logCh),
		waitForOutput(m.outCh),
		waitForStatus(m.statusCh),
		tickCmd(),
		textinput.Blink,
	)
}

func waitForLog(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(line)
	}
}

func waitForOutput(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return nil
		}
		return outputMsg(chunk)
	}
}

func waitForStatus(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(status)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(updateTickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
