//go:build !headless

package gui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"organizer-gui/internal/backup"
	"organizer-gui/internal/config"
	"organizer-gui/internal/logging"
	"organizer-gui/internal/runctx"
	"organizer-gui/internal/runtime"
	"organizer-gui/internal/sysopen"
	"organizer-gui/internal/tailer"
)

func waitGroupWithTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (c *controller) startBackgroundLoop(name string, fn func(context.Context)) {
	c.bgWG.Go(func() {
		c.logger.Debug("background loop started", logging.Field("loop", name))
		fn(c.appCtx)
		c.logger.Debug("background loop stopped", logging.Field("loop", name))
	})
}

func (c *controller) bindLogs() {
	logCh := make(chan string, 256)
	c.unsubscribe = c.logger.Subscribe(func(event logging.Event) {
		line := logging.FormatEventANSI(event)
		select {
		case logCh <- line:
		default:
			select {
			case <-logCh:
			default:
			}
			logCh <- line
		}
	})

	c.startBackgroundLoop("gui log pump", func(ctx context.Context) {
		for {
			line, ok := runctx.RecvOrDone(ctx, "GUI log pump", c.logger, logCh)
			if !ok {
				return
			}
			text := line
			fyne.Do(func() {
				c.appendLog(text)
			})
		}
	})
}

func (c *controller) runOrganizer() {
	source := strings.TrimSpace(c.sourceDir.Text)
	output := strings.TrimSpace(c.outputDir.Text)

	err := runtime.StartOrganize(c.organizer, c.opts.OrganizeScript, source, output, runtime.Hooks{
		OnOutput: func(text string) {
			fyne.Do(func() {
				appendOutput(c.organizerOut, text)
			})
		},
		OnStatus: func(status string) {
			fyne.Do(func() {
				c.applyOrganizerStatus(status)
			})
		},
		OnDone: func(code int) {
			fyne.Do(func() {
				c.organizerFinished(code)
			})
		},
	})
	if err != nil {
		dialog.ShowError(err, c.win)
		return
	}

	c.organizerOut.SetText("")
	c.runButton.Disable()
	c.stopButton.Enable()
	c.organizerProgress.Show()
	c.organizerProgress.Start()
	c.persistSettings()
}

func (c *controller) organizerFinished(code int) {
	c.organizerProgress.Stop()
	c.organizerProgress.Hide()
	c.runButton.Enable()
	c.stopButton.Disable()
	if code == 0 {
		dialog.ShowInformation("Done", "Organizer finished successfully.", c.win)
		return
	}
	dialog.ShowInformation("Completed with errors", organizerDoneMessage(code), c.win)
}

func organizerDoneMessage(code int) string {
	return fmt.Sprintf("Organizer returned code %d. Check the logs.", code)
}

func (c *controller) applyOrganizerStatus(status string) {
	c.organizerStatus.SetText(status)
	c.organizerBadge.SetColor(statusColorFor(status))
	if !c.organizer.IsRunning() {
		c.organizerProgress.Stop()
		c.organizerProgress.Hide()
		c.runButton.Enable()
		c.stopButton.Disable()
	}
}

func (c *controller) runIntegrity() {
	dir := strings.TrimSpace(c.verifyDir.Text)

	err := runtime.StartVerify(c.verifier, c.opts.VerifyScript, dir, runtime.Hooks{
		OnOutput: func(text string) {
			fyne.Do(func() {
				appendOutput(c.integrityOut, text)
			})
		},
		OnStatus: func(status string) {
			fyne.Do(func() {
				c.applyIntegrityStatus(status)
			})
		},
		OnDone: func(code int) {
			fyne.Do(func() {
				c.integrityFinished(code)
			})
		},
	})
	if err != nil {
		dialog.ShowError(err, c.win)
		return
	}

	c.integrityOut.SetText("")
	c.verifyButton.Disable()
	c.integrityProgress.Show()
	c.integrityProgress.Start()
}

func (c *controller) integrityFinished(code int) {
	c.integrityProgress.Stop()
	c.integrityProgress.Hide()
	c.verifyButton.Enable()
	if code == 0 {
		dialog.ShowInformation("Integrity", "All files match their checksums.", c.win)
		return
	}
	dialog.ShowInformation("Integrity", integrityDoneMessage(code), c.win)
}

func integrityDoneMessage(code int) string {
	return fmt.Sprintf("Integrity check returned code %d. Check the logs.", code)
}

func (c *controller) applyIntegrityStatus(status string) {
	c.integrityStatus.SetText(status)
	c.integrityBadge.SetColor(statusColorFor(status))
	if !c.verifier.IsRunning() {
		c.integrityProgress.Stop()
		c.integrityProgress.Hide()
		c.verifyButton.Enable()
	}
}

func (c *controller) openChecksumLog() {
	output := strings.TrimSpace(c.outputDir.Text)
	if output == "" {
		dialog.ShowInformation("No Output", "Please select an output folder first.", c.win)
		return
	}
	path := config.ChecksumLogPath(output)
	if err := sysopen.Open(path); err != nil {
		c.logger.Warn("failed to open checksum log", logging.Field("error", err))
		dialog.ShowError(err, c.win)
	}
}

func (c *controller) refreshBackups() {
	dir := strings.TrimSpace(c.backupDir.Text)
	if dir == "" {
		c.backupEntries = nil
		c.backupsList.Refresh()
		return
	}
	entries, err := backup.List(dir)
	if err != nil {
		c.logger.Warn("failed to list backups", logging.Field("error", err))
		dialog.ShowError(err, c.win)
		return
	}
	c.backupEntries = entries
	c.backupsList.UnselectAll()
	c.backupsList.Refresh()
}

func (c *controller) restoreSelectedBackup() {
	dir := strings.TrimSpace(c.backupDir.Text)
	selected := c.selectedBackup
	if selected < 0 || selected >= len(c.backupEntries) {
		dialog.ShowInformation("Select backup", "Select a backup from the list first.", c.win)
		return
	}
	entry := c.backupEntries[selected]

	dialog.ShowConfirm(
		"Restore backup?",
		"Restore "+entry.Name+" into "+dir+"?\nExisting files will be overwritten.",
		func(ok bool) {
			if !ok {
				return
			}
			go func() {
				count, err := backup.Restore(entry.Path, dir)
				fyne.Do(func() {
					if err != nil {
						c.logger.Warn("backup restore failed",
							logging.Field("archive", entry.Name),
							logging.Field("error", err),
						)
						dialog.ShowError(err, c.win)
						return
					}
					c.logger.Info("backup restored",
						logging.Field("archive", entry.Name),
						logging.Field("files", count),
					)
					dialog.ShowInformation("Restored",
						"Backup restored successfully.", c.win)
				})
			}()
		},
		c.win,
	)
}

func (c *controller) startLiveLogs() {
	dir := strings.TrimSpace(c.logsDir.Text)
	if dir == "" {
		dialog.ShowInformation("Select directory",
			"Select an organized directory to read logs from.", c.win)
		return
	}
	c.stopLiveLogs()
	c.liveLogsOut.SetText("")

	paths := config.LiveLogPaths(dir)
	if !anyLogPresent(paths) {
		dialog.ShowInformation("No logs",
			"No log files found in this folder yet. They will appear once the organizer runs.", c.win)
	}

	monitor := tailer.NewMonitor(
		tailer.MonitorOptions{Paths: paths},
		c.logger,
		tailer.MonitorCallbacks{
			OnContent: func(path string, content string) {
				section := tailer.FormatSection(path, content)
				fyne.Do(func() {
					appendOutput(c.liveLogsOut, section)
				})
			},
			OnError: func(err error) {
				c.logger.Warn("live log watch error", logging.Field("error", err))
			},
		},
	)

	ctx, cancel := context.WithCancel(c.appCtx)
	c.liveLogsCancel = cancel
	c.startBackgroundLoop("live log monitor", func(context.Context) {
		if err := monitor.RunContext(ctx); err != nil {
			c.logger.Warn("live log monitor stopped", logging.Field("error", err))
		}
	})
	c.liveLogsStart.Disable()
	c.liveLogsStop.Enable()
}

func anyLogPresent(paths []string) bool {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func (c *controller) stopLiveLogs() {
	if c.liveLogsCancel != nil {
		c.liveLogsCancel()
		c.liveLogsCancel = nil
	}
	if c.liveLogsStart != nil {
		c.liveLogsStart.Enable()
	}
	if c.liveLogsStop != nil {
		c.liveLogsStop.Disable()
	}
}

func (c *controller) cleanup() {
	c.cleanupOnce.Do(func() {
		c.shuttingDown = true
		c.logger.Debug("gui cleanup started")
		c.persistSettings()
		if c.appCancel != nil {
			c.appCancel()
		}
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		if ok := waitGroupWithTimeout(&c.bgWG, 2*time.Second); !ok {
			c.logger.Warn("GUI background loops did not stop within timeout")
		}
		if ok := c.organizer.StopAndWait(3 * time.Second); !ok {
			c.logger.Warn("organizer run did not stop within timeout")
		}
		if ok := c.verifier.StopAndWait(3 * time.Second); !ok {
			c.logger.Warn("integrity run did not stop within timeout")
		}
		c.logger.Debug("gui cleanup complete")
		_ = c.logger.Close()
	})
}

func (c *controller) quitApp() {
	c.quitOnce.Do(func() {
		c.logger.Debug("quit requested")
		c.cleanup()
		c.app.Quit()
	})
}
