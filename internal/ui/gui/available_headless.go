//go:build headless

package gui

import (
	"context"

	"organizer-gui/internal/config"
)

// Available reports whether this binary was built with GUI support.
func Available() bool { return false }

// Run is a stub so headless-tagged builds still link; the dispatcher
// never calls it when Available is false.
func Run(context.Context, string, config.Options) {}
