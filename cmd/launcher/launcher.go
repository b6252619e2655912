package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

const (
	envFileName = ".env"
	defaultPort = "5000"

	// signalSettle bounds the wait for an interrupt racing a failed exit.
	signalSettle = 100 * time.Millisecond
)

// toolchain names the Node executables for the current platform.
type toolchain struct {
	node string
	npm  string
	npx  string
}

func defaultToolchain(goos string) toolchain {
	if goos == "windows" {
		return toolchain{node: "node", npm: "npm.cmd", npx: "npx.cmd"}
	}
	return toolchain{node: "node", npm: "npm", npx: "npx"}
}

// Launcher prepares the project in root and starts it.
type Launcher struct {
	root   string
	con    *console
	prompt prompter
	runner runner
	log    *log.Logger
	tools  toolchain
	env    environ

	// copyURL puts the launch URL on the clipboard. Nil disables it.
	copyURL func(string) error
}

func newLauncher() (*Launcher, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	root, err := findProjectRoot(cfg.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("project root resolved", "root", root)

	return &Launcher{
		root:    root,
		con:     newConsole(os.Stdout, cfg.NoColor != ""),
		prompt:  newPrompter(os.Stdin, os.Stdout),
		runner:  execRunner{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr},
		log:     logger,
		tools:   defaultToolchain(runtime.GOOS),
		env:     newEnviron(os.Environ()),
		copyURL: clipboard.WriteAll,
	}, nil
}

// Run executes the whole launch sequence and returns the exit code.
func (l *Launcher) Run(ctx context.Context) int {
	if !l.checkPrerequisites(ctx) {
		return l.fail()
	}
	if err := l.loadEnvironment(); err != nil {
		l.con.Error(err.Error())
		return l.fail()
	}
	if !l.runSteps(ctx, l.plan()) {
		return l.fail()
	}
	return l.start(ctx)
}

// loadEnvironment layers .env over the inherited environment.
func (l *Launcher) loadEnvironment() error {
	pairs, err := readEnvFile(l.envPath())
	if err != nil {
		return fmt.Errorf("cannot load %s: %w", envFileName, err)
	}
	l.env.Apply(pairs)
	l.log.Debug("environment loaded", "keys", len(pairs))
	return nil
}

// start runs the server until it exits or the user interrupts it.
func (l *Launcher) start(ctx context.Context) int {
	url := "http://localhost:" + l.env.Get("PORT", defaultPort)
	l.con.Banner(
		styleBold.Render("LAUNCHING GOLD PREDICT"),
		"Open your browser: "+styleOk.Render(url),
		styleDim.Render("Press Ctrl+C to stop the server"),
	)
	if l.copyURL != nil {
		if err := l.copyURL(url); err != nil {
			l.log.Debug("clipboard unavailable", "err", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	code, err := l.runner.Run(runCtx, l.command(l.tools.npm, "start"))
	if l.interrupted(runCtx, code, err) {
		l.con.Println()
		l.con.Println()
		l.con.Println(styleOk.Render("Server stopped. Goodbye!"))
		return 0
	}
	if err != nil {
		l.con.Error(fmt.Sprintf("Cannot start the application: %v", err))
		return l.fail()
	}
	if code != 0 {
		l.con.Println()
		l.con.Error(fmt.Sprintf("Application exited with code %d", code))
		return l.fail()
	}
	return 0
}

// interrupted reports whether the server stopped because of Ctrl+C or
// SIGTERM. The terminal signals the child and the launcher together, so the
// child may exit before the launcher's own signal lands; a failed exit waits
// up to signalSettle for it.
func (l *Launcher) interrupted(runCtx context.Context, code int, err error) bool {
	if runCtx.Err() != nil {
		return true
	}
	if code == signalExitCode(syscall.SIGINT) || code == signalExitCode(syscall.SIGTERM) {
		return true
	}
	if code == 0 && err == nil {
		return false
	}

	timer := time.NewTimer(signalSettle)
	defer timer.Stop()
	select {
	case <-runCtx.Done():
		return true
	case <-timer.C:
		return false
	}
}

// fail waits for acknowledgement and returns the failure exit code.
func (l *Launcher) fail() int {
	if err := l.prompt.Pause("Press Enter to exit..."); err != nil {
		l.log.Debug("pause interrupted", "err", err)
	}
	return 1
}

func (l *Launcher) command(name string, args ...string) Command {
	return Command{Name: name, Args: args, Dir: l.root, Env: l.env.List()}
}

func (l *Launcher) envPath() string {
	return filepath.Join(l.root, envFileName)
}
