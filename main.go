package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"organizer-gui/internal/config"
	"organizer-gui/internal/ui/gui"
	"organizer-gui/internal/ui/headless"

	flags "github.com/jessevdk/go-flags"
)

var BuildVersion = "dev"

func main() {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions()
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	for _, script := range missingScripts(opts) {
		fmt.Fprintf(os.Stderr, "warning: script not found: %s\n", script)
	}

	lock, lockedByOther, lockErr := acquireInstanceLock()
	if lockErr != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize single-instance lock:", lockErr)
		os.Exit(2)
	}
	if lockedByOther {
		if !gui.Available() || opts.Headless {
			fmt.Fprintln(os.Stderr, "File Organizer is already running.")
		} else {
			hideAndDetachConsoleForGUI()
			showAlreadyRunningDialog()
		}
		os.Exit(1)
	}
	defer func() {
		_ = lock.Release()
	}()

	// Headless-tag builds always run headless; runtime UI selection is ignored.
	if !gui.Available() {
		headless.Run(rootCtx, BuildVersion, opts)
		return
	}

	if opts.Headless {
		headless.Run(rootCtx, BuildVersion, opts)
		return
	}
	hideAndDetachConsoleForGUI()
	gui.Run(rootCtx, BuildVersion, opts)
}

// missingScripts reports configured script paths that do not exist yet.
// Runs still validate at start time; this only feeds the startup warning.
func missingScripts(opts config.Options) []string {
	var missing []string
	for _, script := range []string{opts.OrganizeScript, opts.VerifyScript} {
		if script == "" {
			continue
		}
		if _, err := os.Stat(script); err != nil {
			missing = append(missing, script)
		}
	}
	return missing
}
