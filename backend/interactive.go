// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-mpl/plot"
	"github.com/kballard/go-shellquote"
)

// DefaultCommand runs a Python interpreter that reads its program
// from standard input.
var DefaultCommand = []string{"python3", "-"}

// State is the lifecycle state of an Interactive backend.
type State int

const (
	NotStarted State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// InteractiveOptions configures NewInteractive.
type InteractiveOptions struct {
	// Command is the renderer command line. If empty, it defaults
	// to DefaultCommand.
	Command []string

	// Stdout and Stderr receive the renderer's output. If nil,
	// they default to os.Stdout and os.Stderr.
	Stdout, Stderr io.Writer

	// Logger receives lifecycle events at debug level. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Interactive is a renderer process fed one statement per line over
// its standard input. Figures sent with Evaluate accumulate in the
// same process until Wait.
//
// The process belongs to the Interactive. Callers must call Wait or
// Close on every path; Close after Wait is a no-op, so
//
//	r, err := backend.NewInteractive(opts)
//	if err != nil { ... }
//	defer r.Close()
//
// is the usual pattern.
type Interactive struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	state    State
	preluded bool
	log      *slog.Logger
	cleanup  runtime.Cleanup
}

// NewInteractive starts the renderer process. If it cannot be
// started, the error matches ErrSpawn and no process is left behind.
func NewInteractive(opts InteractiveOptions) (*Interactive, error) {
	argv := opts.Command
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout, cmd.Stderr = opts.Stdout, opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSpawn, shellquote.Join(argv...), err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrSpawn, shellquote.Join(argv...), err)
	}
	log.Debug("renderer started", "cmd", shellquote.Join(argv...), "pid", cmd.Process.Pid)

	r := &Interactive{cmd: cmd, stdin: stdin, state: Running, log: log}
	// If r is dropped without Close, at least don't leave the
	// renderer running.
	r.cleanup = runtime.AddCleanup(r, func(p *os.Process) { p.Kill() }, cmd.Process)
	return r, nil
}

// State returns the lifecycle state of r.
func (r *Interactive) State() State { return r.state }

// Pid returns the process ID of the renderer.
func (r *Interactive) Pid() int { return r.cmd.Process.Pid }

// Exec sends one Python statement to the renderer. The renderer's
// prelude is sent ahead of the first statement.
func (r *Interactive) Exec(stmt string) error {
	if r.state != Running {
		return ErrClosed
	}
	if !r.preluded {
		if err := r.write(Prelude); err != nil {
			return err
		}
		r.preluded = true
	}
	return r.write(stmt)
}

func (r *Interactive) write(script string) error {
	if _, err := io.WriteString(r.stdin, script+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrBrokenPipe, err)
	}
	return nil
}

// Evaluate sends fig to the renderer, which binds the resulting
// matplotlib figure to the Python variable fig.
func (r *Interactive) Evaluate(fig plot.Figure) error {
	stmt, err := evalStatement(fig)
	if err != nil {
		return err
	}
	return r.Exec(stmt)
}

// SetStyle selects a matplotlib style sheet for figures evaluated
// after it.
func (r *Interactive) SetStyle(name string) error {
	return r.Exec("plt.style.use(" + pyString(name) + ")")
}

// SaveFig saves the most recently evaluated figure to path.
func (r *Interactive) SaveFig(path string) error {
	return r.Exec("fig.savefig(" + pyString(path) + ")")
}

// DumpPickle pickles the most recently evaluated figure to path.
func (r *Interactive) DumpPickle(path string) error {
	return r.Exec("__import__('pickle').dump(fig, open(" + pyString(path) + ", 'wb'))")
}

// Show displays all open figures and blocks the renderer until they
// are closed.
func (r *Interactive) Show() error {
	return r.Exec("plt.show()")
}

// Wait closes the renderer's input and blocks until it exits.
func (r *Interactive) Wait() error {
	if r.state != Running {
		return ErrClosed
	}
	var werr error
	if !r.preluded {
		// Nothing was sent, but the renderer still expects a
		// valid program.
		werr = r.write(Prelude)
	}
	r.stdin.Close()
	err := r.cmd.Wait()
	r.finish()
	if werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	return nil
}

// Close kills the renderer if it is still running and releases its
// resources. It is safe to call more than once.
func (r *Interactive) Close() error {
	if r.state != Running {
		return nil
	}
	if err := r.cmd.Process.Kill(); err != nil {
		r.log.Debug("killing renderer", "pid", r.cmd.Process.Pid, "err", err)
	}
	r.stdin.Close()
	if err := r.cmd.Wait(); err != nil {
		r.log.Debug("reaping renderer", "pid", r.cmd.Process.Pid, "err", err)
	}
	r.finish()
	return nil
}

func (r *Interactive) finish() {
	r.state = Closed
	r.cleanup.Stop()
	r.log.Debug("renderer exited", "pid", r.cmd.Process.Pid, "state", r.cmd.ProcessState)
}

// pyString returns s as a Python string literal. Go's escapes are a
// subset of Python 3's for valid UTF-8. Other strings become bytes
// decoded with surrogateescape, as Python does for non-UTF-8 paths.
func pyString(s string) string {
	if utf8.ValidString(s) {
		return strconv.Quote(s)
	}
	var b strings.Builder
	b.WriteString(`b"`)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	b.WriteString(`".decode("utf-8", "surrogateescape")`)
	return b.String()
}
