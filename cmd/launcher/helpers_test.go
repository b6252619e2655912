package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not on PATH")
	}
}

func TestFindProjectRoot_Override(t *testing.T) {
	dir := t.TempDir()

	root, err := findProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindProjectRoot_OverrideMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := findProjectRoot(file)
	assert.ErrorContains(t, err, "is not a directory")

	_, err = findProjectRoot(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "is not a directory")
}

func TestFindProjectRoot_DefaultsToExecutableDir(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	root, err := findProjectRoot("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(exe), root)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "npx drizzle-kit push", Command{Name: "npx", Args: []string{"drizzle-kit", "push"}}.String())
	assert.Equal(t, "npm", Command{Name: "npm"}.String())
}

func TestExitCode(t *testing.T) {
	code, err := exitCode(nil)
	assert.Equal(t, 0, code)
	assert.NoError(t, err)

	boom := errors.New("boom")
	code, err = exitCode(boom)
	assert.Equal(t, -1, code)
	assert.ErrorIs(t, err, boom)
}

func TestExecRunner_Run(t *testing.T) {
	requireShell(t)
	var stdout bytes.Buffer
	r := execRunner{stdout: &stdout, stderr: &bytes.Buffer{}}
	dir := t.TempDir()

	code, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `echo "$GREETING from $(pwd)"; exit 3`},
		Dir:  dir,
		Env:  []string{"GREETING=hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, stdout.String(), "hello from")
}

func TestExecRunner_RunMissingBinary(t *testing.T) {
	r := execRunner{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}

	code, err := r.Run(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"})
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestExecRunner_CancelStopsChild(t *testing.T) {
	requireShell(t)
	r := execRunner{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	code, _ := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 30"}})

	assert.Equal(t, signalExitCode(syscall.SIGINT), code)
	assert.Less(t, time.Since(started), stopGracePeriod)
}

func TestExecRunner_ChildKilledBySignal(t *testing.T) {
	requireShell(t)
	r := execRunner{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}

	code, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "kill -INT $$"}})
	require.NoError(t, err)
	assert.Equal(t, 130, code)
}

type fakeProcess struct {
	signalErr error
	signalled []syscall.Signal
	killed    bool
}

func (p *fakeProcess) SendSignal(sig syscall.Signal) error {
	p.signalled = append(p.signalled, sig)
	return p.signalErr
}

func (p *fakeProcess) Kill() error {
	p.killed = true
	return nil
}

func TestStopProcess(t *testing.T) {
	t.Run("signal delivered", func(t *testing.T) {
		p := &fakeProcess{}
		require.NoError(t, stopProcess(p, syscall.SIGINT))
		assert.Equal(t, []syscall.Signal{syscall.SIGINT}, p.signalled)
		assert.False(t, p.killed)
	})

	t.Run("signals unsupported falls back to kill", func(t *testing.T) {
		p := &fakeProcess{signalErr: errors.New("not implemented yet")}
		require.NoError(t, stopProcess(p, syscall.SIGINT))
		assert.True(t, p.killed)
	})
}

func TestExecRunner_Output(t *testing.T) {
	requireShell(t)

	out, err := execRunner{}.Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo '  v1.2.3  '"}})
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", out)
}
