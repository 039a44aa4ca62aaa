package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/relay"
	"organizer-gui/internal/runner"
	"organizer-gui/internal/runstatus"
)

// Hooks observe one invocation. Append receives output chunks in order;
// OnStatus receives human-readable status transitions; OnDone fires exactly
// once with the final exit code, after the last chunk has been appended.
// Hooks are called from the controller's goroutine, so UI callers marshal
// onto their own thread inside the hook.
type Hooks struct {
	OnOutput func(text string)
	OnStatus func(status string)
	OnDone   func(code int)
}

// Controller owns at most one active script invocation. A start while a
// run is active is refused, never queued.
type Controller struct {
	rootCtx context.Context
	logger  *logging.Logger
	labels  runstatus.Labels

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

func NewController(rootCtx context.Context, labels runstatus.Labels, logger *logging.Logger) *Controller {
	if logger == nil {
		panic("runtime.NewController: logger must not be nil")
	}
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	return &Controller{rootCtx: rootCtx, labels: labels, logger: logger}
}

func (c *Controller) Start(cmd runner.Command, hooks Hooks) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("a script is already running")
	}
	c.logger.Debug("run start requested", logging.Field("command", cmd.String()))

	ctx, cancel := context.WithCancel(c.rootCtx)
	queue := relay.NewQueue()
	drainer := runner.NewDrainer(queue, 0, runner.DrainHooks{Append: hooks.OnOutput})

	c.cancel = cancel
	c.running = true
	if hooks.OnStatus != nil {
		hooks.OnStatus(c.labels.Running)
	}

	c.wg.Go(func() {
		defer cancel()
		runner.Start(ctx, cmd, queue, c.logger)
		code, runErr := drainer.RunContext(ctx)
		if runErr != nil {
			// Canceled before the completion item was drained. The process
			// is being killed by the context; sweep whatever already landed
			// so no output is silently dropped.
			drainer.Tick()
			if swept, done := drainer.Code(); done {
				code, runErr = swept, nil
			}
		}

		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()

		switch {
		case runErr == nil:
			c.logger.Info("script run finished",
				logging.Field("command", cmd.String()),
				logging.Field("code", code),
			)
			if hooks.OnStatus != nil {
				hooks.OnStatus(c.labels.ForExitCode(code))
			}
			if hooks.OnDone != nil {
				hooks.OnDone(code)
			}
		case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
			c.logger.Debug("script run stopped", logging.Field("error", runErr))
			if hooks.OnStatus != nil {
				hooks.OnStatus(runstatus.Stopped)
			}
		default:
			c.logger.Warn("script run failed", logging.Field("error", runErr))
			if hooks.OnStatus != nil {
				hooks.OnStatus(c.labels.Failed)
			}
		}
	})

	return nil
}

func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) Wait(timeout time.Duration) bool {
	waitDone := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(waitDone)
	}()
	if timeout <= 0 {
		<-waitDone
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-waitDone:
		return true
	case <-timer.C:
		return false
	}
}

func (c *Controller) StopAndWait(timeout time.Duration) bool {
	c.Stop()
	return c.Wait(timeout)
}

func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
