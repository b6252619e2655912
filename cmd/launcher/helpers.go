package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// stopGracePeriod is how long a signalled child may take before it is killed.
const stopGracePeriod = 10 * time.Second

// findProjectRoot returns the directory the launcher binary lives in.
// Supports GOLDPREDICT_ROOT override.
func findProjectRoot(override string) (string, error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("GOLDPREDICT_ROOT=%s is not a directory", override)
		}
		return filepath.Abs(override)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate launcher executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Command is a single external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

type runner interface {
	LookPath(name string) (string, error)
	// Output runs cmd and returns its trimmed stdout.
	Output(ctx context.Context, cmd Command) (string, error)
	// Run attaches cmd to the terminal and returns its exit code. The error
	// is set only when the process could not be started or waited for.
	Run(ctx context.Context, cmd Command) (int, error)
}

// execRunner spawns real processes.
type execRunner struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Output(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

// Run spawns a child process and waits for it. Cancelling ctx forwards
// SIGINT to the child and its descendants instead of killing outright.
func (r execRunner) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Cancel = func() error {
		return signalTree(cmd.Process.Pid, syscall.SIGINT)
	}
	cmd.WaitDelay = stopGracePeriod

	if err := cmd.Start(); err != nil {
		return -1, err
	}
	return exitCode(cmd.Wait())
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return signalExitCode(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// signalExitCode is the shell convention for a process killed by sig.
func signalExitCode(sig syscall.Signal) int {
	return 128 + int(sig)
}

// signalTree delivers sig to pid and all of its descendants, deepest first.
// The server started by npm is a grandchild of the launcher.
func signalTree(pid int, sig syscall.Signal) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	return signalProcess(p, sig)
}

func signalProcess(p *process.Process, sig syscall.Signal) error {
	children, _ := p.Children()
	for _, child := range children {
		_ = signalProcess(child, sig)
	}
	return stopProcess(p, sig)
}

type stoppable interface {
	SendSignal(sig syscall.Signal) error
	Kill() error
}

// stopProcess sends sig, killing p where signals are unsupported (Windows).
func stopProcess(p stoppable, sig syscall.Signal) error {
	if err := p.SendSignal(sig); err != nil {
		return p.Kill()
	}
	return nil
}
