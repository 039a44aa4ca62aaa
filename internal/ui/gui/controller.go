//go:build !headless

package gui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"organizer-gui/internal/backup"
	"organizer-gui/internal/config"
	"organizer-gui/internal/logging"
	"organizer-gui/internal/runstatus"
	"organizer-gui/internal/runtime"
)

var (
	statusIdleColor    = color.NRGBA{R: 145, G: 145, B: 145, A: 255}
	statusRunningColor = color.NRGBA{R: 219, G: 167, B: 74, A: 255}
	statusOKColor      = color.NRGBA{R: 72, G: 189, B: 109, A: 255}
	statusFailedColor  = color.NRGBA{R: 220, G: 84, B: 84, A: 255}
)

type controller struct {
	app      fyne.App
	win      fyne.Window
	logger   *logging.Logger
	settings config.AppSettings
	opts     config.Options

	organizer *runtime.Controller
	verifier  *runtime.Controller

	sourceDir *widget.Entry
	outputDir *widget.Entry
	verifyDir *widget.Entry
	logsDir   *widget.Entry
	backupDir *widget.Entry

	organizerOut      *widget.Entry
	organizerStatus   *widget.Label
	organizerBadge    *statusBadge
	organizerProgress *widget.ProgressBarInfinite
	runButton         *widget.Button
	stopButton        *widget.Button

	integrityOut      *widget.Entry
	integrityStatus   *widget.Label
	integrityBadge    *statusBadge
	integrityProgress *widget.ProgressBarInfinite
	verifyButton      *widget.Button

	backupEntries  []backup.Entry
	backupsList    *widget.List
	selectedBackup int

	liveLogsOut    *widget.Entry
	liveLogsStart  *widget.Button
	liveLogsStop   *widget.Button
	liveLogsCancel context.CancelFunc
	debugLogs      *widget.Check

	logWindow     fyne.Window
	logWindowOpen bool
	logGrid       *widget.TextGrid
	logScroll     *container.Scroll
	followEnabled bool
	logRawLines   []string

	dirPickerWindow  fyne.Window
	dirPickerPath    *widget.Entry
	dirPickerCurrent string
	dirPickerItems   []string
	dirPickerList    *widget.List
	dirPickerTarget  func(string)

	cleanupOnce    sync.Once
	quitOnce       sync.Once
	bgWG           sync.WaitGroup
	unsubscribe    func()
	appCtx         context.Context
	appCancel      context.CancelFunc
	shuttingDown   bool
	confirmingQuit bool
}

func Run(rootCtx context.Context, buildVersion string, defaults config.Options) {
	uiApp := app.New()
	c := newController(rootCtx, uiApp, defaults)
	c.logger.Info("starting organizer UI", logging.Field("version", buildVersion))
	c.run()
}

func newController(rootCtx context.Context, uiApp fyne.App, defaults config.Options) *controller {
	settings := config.SettingsFromOptions(defaults)
	if saved, err := config.LoadSettings(); err == nil {
		defaults = config.MergeOptionsWithSettings(defaults, saved)
		settings = config.SettingsFromOptions(defaults)
	}

	logger := logging.New(false)
	logger.SetDebugEnabled(defaults.Debug)
	if dirErr := logger.EnableFilePersistence(0); dirErr != nil {
		logger.Warn("session log persistence disabled", logging.Field("error", dirErr))
	}
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	appCtx, appCancel := context.WithCancel(rootCtx)

	c := &controller{
		app:       uiApp,
		settings:  settings,
		opts:      defaults,
		logger:    logger,
		organizer: runtime.NewController(appCtx, runstatus.Organizer, logger),
		verifier:  runtime.NewController(appCtx, runstatus.Integrity, logger),
		appCtx:    appCtx,
		appCancel: appCancel,
	}

	c.win = uiApp.NewWindow("File Organizer")
	c.win.SetMaster()
	c.win.Resize(fyne.NewSize(900, 620))
	c.buildUI()
	c.bindLogs()
	c.app.Lifecycle().SetOnStopped(func() {
		c.logger.Debug("app lifecycle OnStopped hook triggered")
		c.cleanup()
	})
	return c
}

func (c *controller) run() {
	go func() {
		<-c.appCtx.Done()
		fyne.Do(func() {
			if c.shuttingDown {
				return
			}
			c.logger.Info("root context canceled; shutting down organizer UI")
			c.quitApp()
		})
	}()
	c.win.SetOnClosed(func() {
		if c.shuttingDown {
			return
		}
		c.cleanup()
	})
	c.win.SetCloseIntercept(func() {
		c.requestQuit()
	})
	c.win.Show()
	c.app.Run()
}

func (c *controller) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Organizer", c.buildOrganizerTab()),
		container.NewTabItem("Integrity", c.buildIntegrityTab()),
		container.NewTabItem("Backups", c.buildBackupsTab()),
		container.NewTabItem("Logs", c.buildLogsTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	c.initLogWindow()

	minAnchor := canvas.NewRectangle(color.Transparent)
	minAnchor.SetMinSize(fyne.NewSize(860, 560))
	c.win.SetContent(container.NewStack(minAnchor, tabs))
}

func (c *controller) buildOrganizerTab() fyne.CanvasObject {
	c.sourceDir = widget.NewEntry()
	c.sourceDir.SetText(c.settings.SourceDir)
	c.outputDir = widget.NewEntry()
	c.outputDir.SetText(c.settings.OutputDir)

	browseSource := widget.NewButton("Browse...", func() {
		c.selectDirectory("Select Source Folder", c.sourceDir)
	})
	browseOutput := widget.NewButton("Browse...", func() {
		c.selectDirectory("Select Output Folder", c.outputDir)
	})

	c.organizerOut = newOutputPane()
	c.organizerStatus = widget.NewLabel(runstatus.Idle)
	c.organizerBadge = newStatusBadge(statusIdleColor)
	c.organizerProgress = widget.NewProgressBarInfinite()
	c.organizerProgress.Stop()
	c.organizerProgress.Hide()

	c.runButton = widget.NewButton("Run Organizer", c.runOrganizer)
	c.stopButton = widget.NewButton("Stop", func() {
		c.organizer.Stop()
	})
	c.stopButton.Disable()
	openChecksum := widget.NewButton("Open Checksum Log", c.openChecksumLog)
	clearOut := widget.NewButton("Clear Output", func() {
		c.organizerOut.SetText("")
	})

	form := container.NewVBox(
		widget.NewLabel("Source Folder (files to organize)"),
		container.NewBorder(nil, nil, nil, browseSource, c.sourceDir),
		widget.NewLabel("Output Folder (organized files)"),
		container.NewBorder(nil, nil, nil, browseOutput, c.outputDir),
	)
	controls := container.NewHBox(c.runButton, c.stopButton, openChecksum, clearOut)
	statusRow := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Status:"), c.organizerBadge, c.organizerStatus),
		nil,
		c.organizerProgress,
	)

	return container.NewPadded(container.NewBorder(
		container.NewVBox(form, controls, statusRow),
		nil, nil, nil,
		container.NewScroll(c.organizerOut),
	))
}

func (c *controller) buildIntegrityTab() fyne.CanvasObject {
	c.verifyDir = widget.NewEntry()
	c.verifyDir.SetText(c.settings.OutputDir)
	browse := widget.NewButton("Browse...", func() {
		c.selectDirectory("Select Organized Folder to Verify", c.verifyDir)
	})

	c.integrityOut = newOutputPane()
	c.integrityStatus = widget.NewLabel(runstatus.Idle)
	c.integrityBadge = newStatusBadge(statusIdleColor)
	c.integrityProgress = widget.NewProgressBarInfinite()
	c.integrityProgress.Stop()
	c.integrityProgress.Hide()

	c.verifyButton = widget.NewButton("Run Integrity Check", c.runIntegrity)
	stop := widget.NewButton("Stop", func() {
		c.verifier.Stop()
	})

	form := container.NewVBox(
		widget.NewLabel("Organized Folder"),
		container.NewBorder(nil, nil, nil, browse, c.verifyDir),
	)
	controls := container.NewHBox(c.verifyButton, stop)
	statusRow := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Integrity Status:"), c.integrityBadge, c.integrityStatus),
		nil,
		c.integrityProgress,
	)

	return container.NewPadded(container.NewBorder(
		container.NewVBox(form, controls, statusRow),
		nil, nil, nil,
		container.NewScroll(c.integrityOut),
	))
}

func (c *controller) buildBackupsTab() fyne.CanvasObject {
	c.backupDir = widget.NewEntry()
	c.backupDir.SetText(c.settings.OutputDir)
	browse := widget.NewButton("Browse...", func() {
		c.selectDirectory("Select Organized Folder (contains backups/)", c.backupDir)
		c.refreshBackups()
	})
	c.backupDir.OnSubmitted = func(string) {
		c.refreshBackups()
	}

	c.backupsList = widget.NewList(
		func() int { return len(c.backupEntries) },
		func() fyne.CanvasObject { return widget.NewLabel("backup archive") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(c.backupEntries) {
				return
			}
			entry := c.backupEntries[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  (%d bytes)", entry.Name, entry.Size))
		},
	)
	c.selectedBackup = -1
	c.backupsList.OnSelected = func(id widget.ListItemID) {
		c.selectedBackup = id
	}
	c.backupsList.OnUnselected = func(widget.ListItemID) {
		c.selectedBackup = -1
	}

	refresh := widget.NewButton("Refresh Backups", c.refreshBackups)
	restore := widget.NewButton("Restore Selected Backup", c.restoreSelectedBackup)

	return container.NewPadded(container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Organized Folder (for backups)"),
			container.NewBorder(nil, nil, nil, browse, c.backupDir),
			container.NewHBox(refresh, restore),
		),
		nil, nil, nil,
		c.backupsList,
	))
}

func (c *controller) buildLogsTab() fyne.CanvasObject {
	c.logsDir = widget.NewEntry()
	c.logsDir.SetText(c.settings.OutputDir)
	browse := widget.NewButton("Browse...", func() {
		c.selectDirectory("Select Organized Folder (for logs)", c.logsDir)
	})

	c.liveLogsOut = newOutputPane()
	c.liveLogsStart = widget.NewButton("Start Live Logs", c.startLiveLogs)
	c.liveLogsStop = widget.NewButton("Stop Live Logs", c.stopLiveLogs)
	c.liveLogsStop.Disable()
	clear := widget.NewButton("Clear Log View", func() {
		c.liveLogsOut.SetText("")
	})
	showAppLog := widget.NewButton("Show App Log", func() {
		c.setLogVisibility(true)
	})

	c.debugLogs = widget.NewCheck("Debug logging", func(v bool) {
		c.settings.Debug = v
		c.logger.SetDebugEnabled(v)
	})
	c.debugLogs.SetChecked(c.settings.Debug)

	return container.NewPadded(container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Organized Folder (for logs)"),
			container.NewBorder(nil, nil, nil, browse, c.logsDir),
			container.NewHBox(c.liveLogsStart, c.liveLogsStop, clear, showAppLog, c.debugLogs),
		),
		nil, nil, nil,
		container.NewScroll(c.liveLogsOut),
	))
}

// newOutputPane is a read-only selectable text area for script output.
func newOutputPane() *widget.Entry {
	pane := widget.NewMultiLineEntry()
	pane.Wrapping = fyne.TextWrapOff
	pane.TextStyle = fyne.TextStyle{Monospace: true}
	pane.OnChanged = nil
	return pane
}

func appendOutput(pane *widget.Entry, text string) {
	pane.SetText(pane.Text + text)
	pane.CursorRow = strings.Count(pane.Text, "\n")
	pane.Refresh()
}

func (c *controller) persistSettings() {
	c.settings.SourceDir = strings.TrimSpace(c.sourceDir.Text)
	c.settings.OutputDir = strings.TrimSpace(c.outputDir.Text)
	c.settings.OrganizeScript = strings.TrimSpace(c.opts.OrganizeScript)
	c.settings.VerifyScript = strings.TrimSpace(c.opts.VerifyScript)
	if err := config.SaveSettings(c.settings); err != nil {
		c.logger.Warn("failed to save settings", logging.Field("error", err))
	}
}

func statusColorFor(status string) color.NRGBA {
	switch runstatus.Key(status) {
	case runstatus.Key(runstatus.Idle), runstatus.Key(runstatus.Stopped):
		return statusIdleColor
	case runstatus.Key(runstatus.Organizer.Running), runstatus.Key(runstatus.Integrity.Running):
		return statusRunningColor
	case runstatus.Key(runstatus.Organizer.Succeeded), runstatus.Key(runstatus.Integrity.Succeeded):
		return statusOKColor
	default:
		return statusFailedColor
	}
}

func (c *controller) requestQuit() {
	if c.shuttingDown {
		return
	}
	if !c.organizer.IsRunning() && !c.verifier.IsRunning() {
		c.quitApp()
		return
	}
	if c.confirmingQuit {
		return
	}
	c.confirmingQuit = true
	dialog.ShowConfirm(
		"Quit File Organizer?",
		"A script is still running and will be stopped.",
		func(ok bool) {
			c.confirmingQuit = false
			if !ok {
				return
			}
			c.quitApp()
		},
		c.win,
	)
}
