package runtime

import (
	"os"

	"organizer-gui/internal/config"
	"organizer-gui/internal/runner"
)

// StartOrganize validates inputs, creates the output directory if needed,
// and launches the organize script. Validation failures return before any
// process is spawned.
func StartOrganize(c *Controller, script, sourceDir, outputDir string, hooks Hooks) error {
	if err := config.ValidateOrganize(script, sourceDir, outputDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return c.Start(runner.NewCommand(script, sourceDir, outputDir), hooks)
}

// StartVerify validates inputs and launches the integrity check script
// against an organized directory.
func StartVerify(c *Controller, script, organizedDir string, hooks Hooks) error {
	if err := config.ValidateVerify(script, organizedDir); err != nil {
		return err
	}
	return c.Start(runner.NewCommand(script, organizedDir), hooks)
}
