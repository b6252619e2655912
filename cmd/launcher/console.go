package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/glamour/v2"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const bannerWidth = 60

// console prints the launcher's status text. Styling is stripped when the
// output is not a terminal or NO_COLOR is set.
type console struct {
	w     io.Writer
	plain bool
}

func newConsole(f *os.File, noColor bool) *console {
	return &console{w: f, plain: noColor || !term.IsTerminal(int(f.Fd()))}
}

func (c *console) write(s string) {
	if c.plain {
		s = ansi.Strip(s)
	}
	_, _ = io.WriteString(c.w, s)
}

func (c *console) Println(a ...any) {
	c.write(fmt.Sprintln(a...))
}

func (c *console) Printf(format string, a ...any) {
	c.write(fmt.Sprintf(format, a...))
}

// Banner prints each line indented between two rules, padded by blank lines.
func (c *console) Banner(lines ...string) {
	rule := styleRule.Render(strings.Repeat("=", bannerWidth))
	c.Println()
	c.Println(rule)
	for _, line := range lines {
		c.Println("  " + line)
	}
	c.Println(rule)
	c.Println()
}

func (c *console) Error(msg string) {
	c.Println(styleErr.Render("[ERROR]"), msg)
}

func (c *console) Warn(msg string) {
	c.Println(styleWarn.Render("[WARNING]"), msg)
}

// Markdown renders md without colours; raw text is printed if rendering fails.
func (c *console) Markdown(md string) {
	out, err := glamour.Render(md, "notty")
	if err != nil {
		out = md
	}
	c.Println(strings.TrimRight(out, "\n"))
}
