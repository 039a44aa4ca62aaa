package runstatus

import "strings"

const (
	Idle    = "Idle"
	Stopped = "Stopped"
)

// Labels are the status strings one pipeline cycles through.
type Labels struct {
	Running   string
	Succeeded string
	Failed    string
}

var (
	Organizer = Labels{
		Running:   "Running organizer...",
		Succeeded: "Organizer completed successfully",
		Failed:    "Organizer finished with errors",
	}
	Integrity = Labels{
		Running:   "Running integrity check...",
		Succeeded: "Integrity OK",
		Failed:    "Integrity FAILED",
	}
)

func (l Labels) ForExitCode(code int) string {
	if code == 0 {
		return l.Succeeded
	}
	return l.Failed
}

func Key(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
