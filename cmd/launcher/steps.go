package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type policy int

const (
	// fatal steps abort the launch when they fail.
	fatal policy = iota
	// advisory steps only warn.
	advisory
)

type step struct {
	description string
	command     Command
	policy      policy
	// decide, when set, reports whether the step runs and the banner to
	// show for it. It may print notices or prompt the user.
	decide func() (description string, run bool, err error)
}

// plan lists the preparation steps in the order they run.
func (l *Launcher) plan() []step {
	return []step{
		{
			description: "Installing dependencies",
			command:     l.command(l.tools.npm, "install"),
			policy:      fatal,
			decide:      l.decideInstall,
		},
		{
			description: "Building the application",
			command:     l.command(l.tools.npm, "run", "build"),
			policy:      fatal,
			decide:      l.decideBuild,
		},
		{
			description: "Setting up database schema",
			command:     l.command(l.tools.npx, "drizzle-kit", "push"),
			policy:      advisory,
		},
	}
}

// runSteps runs steps in order and returns false on the first fatal failure.
func (l *Launcher) runSteps(ctx context.Context, steps []step) bool {
	for _, s := range steps {
		description, run := s.description, true
		if s.decide != nil {
			d, ok, err := s.decide()
			if err != nil {
				l.con.Error(err.Error())
				return false
			}
			description, run = d, ok
		}
		if !run {
			continue
		}

		if l.runCommand(ctx, s.command, description) {
			continue
		}
		if s.policy == fatal {
			return false
		}
		l.con.Warn(description + " did not complete; continuing.")
	}
	return true
}

// runCommand prints a banner, runs cmd and reports whether it exited 0.
func (l *Launcher) runCommand(ctx context.Context, cmd Command, description string) bool {
	l.con.Banner(styleBold.Render(description))
	l.log.Debug("running", "cmd", cmd.String(), "dir", cmd.Dir)

	code, err := l.runner.Run(ctx, cmd)
	if err != nil {
		l.con.Println()
		l.con.Error(fmt.Sprintf("%s failed: %v", description, err))
		return false
	}
	if code != 0 {
		l.con.Println()
		l.con.Error(fmt.Sprintf("%s failed with exit code %d", description, code))
		return false
	}
	return true
}

func (l *Launcher) decideInstall() (string, bool, error) {
	if !l.exists("node_modules") {
		return "Installing dependencies", true, nil
	}
	l.con.Println()
	l.con.Println("Dependencies already installed (node_modules exists)")
	return "", false, nil
}

func (l *Launcher) decideBuild() (string, bool, error) {
	if !l.exists("dist") {
		return "Building the application", true, nil
	}
	l.con.Println()
	l.con.Println("Build already exists (dist folder found)")
	rebuild, err := l.prompt.Confirm("Do you want to rebuild?")
	if err != nil {
		return "", false, err
	}
	return "Rebuilding the application", rebuild, nil
}

func (l *Launcher) exists(name string) bool {
	_, err := os.Stat(filepath.Join(l.root, name))
	return err == nil
}
