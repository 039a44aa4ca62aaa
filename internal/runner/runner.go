// Package runner executes one external script per invocation and streams its
// merged stdout/stderr into a relay queue, terminated by exactly one
// completion item carrying the exit code.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"organizer-gui/internal/logging"
	"organizer-gui/internal/relay"
)

const (
	// LaunchFailureCode is synthesized locally when the executable cannot
	// be started; it is never produced by the script itself.
	LaunchFailureCode = 127

	// StreamFailureCode is reported when output streaming breaks after the
	// process has started.
	StreamFailureCode = 1
)

// Command is the argv vector for one invocation. Immutable once built.
type Command struct {
	Path string
	Args []string
}

func NewCommand(path string, args ...string) Command {
	return Command{Path: path, Args: append([]string(nil), args...)}
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Result carries the final exit code of an invocation.
type Result struct {
	Code int
}

// Start runs the command on its own goroutine and returns a one-shot channel
// delivering the same result that arrives on the queue as the completion
// item. The channel is buffered, so the goroutine never blocks on a caller
// that only watches the queue.
func Start(ctx context.Context, cmd Command, queue *relay.Queue, logger *logging.Logger) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		done <- Run(ctx, cmd, queue, logger)
		close(done)
	}()
	return done
}

// Run executes the command to completion. Every failure mode is converted
// into a diagnostic chunk plus a completion item; Run never panics and the
// consumer always observes exactly one completion per call.
func Run(ctx context.Context, cmd Command, queue *relay.Queue, logger *logging.Logger) Result {
	if queue == nil {
		panic("runner.Run: queue must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Debug("starting external process", logging.Field("command", cmd.String()))

	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	stdout, err := proc.StdoutPipe()
	if err != nil {
		return finish(queue, logger, cmd, LaunchFailureCode,
			fmt.Sprintf("[ERROR] Failed to set up output pipe: %v\n", err))
	}
	proc.Stderr = proc.Stdout

	if err := proc.Start(); err != nil {
		return finish(queue, logger, cmd, LaunchFailureCode,
			fmt.Sprintf("[ERROR] Script not found or not executable: %s\n%v\n", cmd.Path, err))
	}

	reader := bufio.NewReader(stdout)
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			queue.PushChunk(line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = proc.Wait()
			return finish(queue, logger, cmd, StreamFailureCode,
				fmt.Sprintf("[ERROR] Reading command output failed: %v\n", readErr))
		}
	}

	waitErr := proc.Wait()
	code := 0
	switch {
	case waitErr == nil:
	case isExitError(waitErr):
		code = proc.ProcessState.ExitCode()
		if code < 0 {
			// Killed by a signal (including context cancellation).
			return finish(queue, logger, cmd, StreamFailureCode,
				fmt.Sprintf("[ERROR] Command terminated: %v\n", waitErr))
		}
	default:
		return finish(queue, logger, cmd, StreamFailureCode,
			fmt.Sprintf("[ERROR] Running command failed: %v\n", waitErr))
	}

	logger.Debug("external process exited",
		logging.Field("command", cmd.String()),
		logging.Field("code", code),
	)
	queue.Push(relay.Completion{Code: code})
	return Result{Code: code}
}

func finish(queue *relay.Queue, logger *logging.Logger, cmd Command, code int, diagnostic string) Result {
	logger.Warn("external process failed",
		logging.Field("command", cmd.String()),
		logging.Field("code", code),
		logging.Field("diagnostic", strings.TrimSpace(diagnostic)),
	)
	queue.PushChunk(diagnostic)
	queue.Push(relay.Completion{Code: code})
	return Result{Code: code}
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
