package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
)

const missingEnvGuide = "Create a `.env` file in the project folder with your configuration.\n\n" +
	"See `LOCALHOST_SETUP_GUIDE.md` for details.\n"

// requiredEnvKeys must appear somewhere in .env. Absence is only a warning.
var requiredEnvKeys = []string{
	"DATABASE_URL",
	"SESSION_SECRET",
	"STRIPE_LIVE_PUBLISHABLE_KEY",
	"STRIPE_LIVE_SECRET_KEY",
}

// checkPrerequisites reports whether node, npm and .env are all present.
func (l *Launcher) checkPrerequisites(ctx context.Context) bool {
	l.con.Banner(styleBold.Render("GOLD PREDICT - Local Launcher"))
	l.con.Println("Checking prerequisites...")
	l.con.Println()

	if _, err := l.runner.LookPath(l.tools.node); err != nil {
		l.log.Debug("lookup failed", "bin", l.tools.node, "err", err)
		l.con.Error("Node.js is not installed.")
		l.con.Println("Download it from: https://nodejs.org (LTS version)")
		return false
	}
	l.con.Println("  Node.js:", l.version(ctx, l.tools.node))

	if _, err := l.runner.LookPath(l.tools.npm); err != nil {
		l.log.Debug("lookup failed", "bin", l.tools.npm, "err", err)
		l.con.Error("npm is not installed.")
		return false
	}
	l.con.Println("  npm:", l.version(ctx, l.tools.npm))

	content, err := os.ReadFile(l.envPath())
	if err != nil {
		l.con.Println()
		if errors.Is(err, fs.ErrNotExist) {
			l.con.Error(".env file not found!")
			l.con.Markdown(missingEnvGuide)
		} else {
			l.con.Error("Cannot read .env: " + err.Error())
		}
		return false
	}
	l.con.Println("  .env file:", styleOk.Render("Found"))

	if missing := missingKeys(string(content), requiredEnvKeys); len(missing) > 0 {
		l.con.Println()
		l.con.Warn("Missing environment variables in .env: " + strings.Join(missing, ", "))
		l.con.Println("The app may not work correctly without these.")
	}

	l.con.Println()
	l.con.Println(styleOk.Render("All prerequisites satisfied!"))
	l.con.Println()
	return true
}

// missingKeys returns the keys that do not occur anywhere in content.
// This is a substring check, so commented-out keys count as present.
func missingKeys(content string, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if !strings.Contains(content, k) {
			missing = append(missing, k)
		}
	}
	return missing
}

func (l *Launcher) version(ctx context.Context, bin string) string {
	out, err := l.runner.Output(ctx, Command{Name: bin, Args: []string{"--version"}, Dir: l.root})
	if err != nil {
		l.log.Debug("version probe failed", "bin", bin, "err", err)
		return styleDim.Render("unknown")
	}
	return out
}
