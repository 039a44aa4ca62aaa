package tailer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/runctx"
)

const (
	defaultPollPeriod    = 2 * time.Second
	watchRetryInitial    = 1 * time.Second
	watchRetryMaxBackoff = 30 * time.Second
)

type MonitorOptions struct {
	Paths      []string
	PollPeriod time.Duration
}

type MonitorCallbacks struct {
	OnContent func(path string, content string)
	OnError   func(error)
}

// Monitor follows a fixed set of log files, waking on a poll ticker and
// on filesystem write events for the directories holding them. The poll
// ticker alone is sufficient for correctness; the watch only makes
// updates snappier.
type Monitor struct {
	opts      MonitorOptions
	logger    *logging.Logger
	callbacks MonitorCallbacks

	tracked   map[string]*Tailer
	watchDirs []string
}

func NewMonitor(opts MonitorOptions, logger *logging.Logger, callbacks MonitorCallbacks) *Monitor {
	if logger == nil {
		panic("tailer.NewMonitor: logger must not be nil")
	}
	if opts.PollPeriod <= 0 {
		opts.PollPeriod = defaultPollPeriod
	}

	tracked := make(map[string]*Tailer, len(opts.Paths))
	dirSeen := map[string]bool{}
	dirs := []string{}
	for _, path := range opts.Paths {
		clean := filepath.Clean(path)
		tracked[clean] = &Tailer{Path: clean}
		dir := filepath.Dir(clean)
		if !dirSeen[dir] {
			dirSeen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return &Monitor{
		opts:      opts,
		logger:    logger,
		callbacks: callbacks,
		tracked:   tracked,
		watchDirs: dirs,
	}
}

func (m *Monitor) RunContext(ctx context.Context) error {
	m.logger.Debug("starting log monitor",
		logging.Field("files", len(m.tracked)),
		logging.Field("poll_period", m.opts.PollPeriod.String()),
	)

	events := make(chan fsnotify.Event)
	go m.runWatch(ctx, events)

	ticker := time.NewTicker(m.opts.PollPeriod)
	defer ticker.Stop()

	m.pollAll()

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("stopping log monitor: context canceled")
			return nil
		case event := <-events:
			m.handleWatchEvent(event)
		case <-ticker.C:
			m.pollAll()
		}
	}
}

// runWatch establishes the directory watch, retrying with exponential
// backoff when the directories do not exist yet, and forwards events to
// the monitor loop. Polling continues regardless of watch state.
func (m *Monitor) runWatch(ctx context.Context, events chan<- fsnotify.Event) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = watchRetryInitial
	retry.MaxInterval = watchRetryMaxBackoff
	retry.Reset()

	watcher, err := backoff.Retry(ctx, func() (*fsnotify.Watcher, error) {
		w, watchErr := fsnotify.NewWatcher()
		if watchErr != nil {
			return nil, watchErr
		}
		for _, dir := range m.watchDirs {
			if addErr := w.Add(dir); addErr != nil {
				_ = w.Close()
				return nil, addErr
			}
		}
		return w, nil
	},
		backoff.WithBackOff(retry),
		backoff.WithNotify(func(err error, next time.Duration) {
			m.logger.Debug("retrying log directory watch",
				logging.Field("error", err),
				logging.Field("next_retry", next.String()))
		}),
	)
	if err != nil {
		m.logger.Debug("log directory watch not established", logging.Field("error", err))
		return
	}
	defer watcher.Close()
	m.logger.Debugf("watching %d log directories", len(m.watchDirs))

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !runctx.SendOrDone(ctx, "log watch forwarder", m.logger, events, event) {
				return
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if watchErr == nil {
				continue
			}
			m.logger.Warn("log watch error", logging.Field("error", watchErr))
			if m.callbacks.OnError != nil {
				m.callbacks.OnError(watchErr)
			}
		}
	}
}

func (m *Monitor) handleWatchEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	tailer, ok := m.tracked[filepath.Clean(event.Name)]
	if !ok {
		return
	}
	m.readTracked(tailer)
}

func (m *Monitor) pollAll() {
	for _, tailer := range m.tracked {
		m.readTracked(tailer)
	}
}

// readTracked skips unreadable files without advancing offsets; a log
// that has not been created yet simply produces nothing this tick.
func (m *Monitor) readTracked(tailer *Tailer) {
	content, err := tailer.ReadNew()
	if err != nil {
		m.logger.Debugf("failed to read %s: %v", tailer.Path, err)
		return
	}
	if content == "" {
		return
	}
	if m.callbacks.OnContent != nil {
		m.callbacks.OnContent(tailer.Path, content)
	}
}
