package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// prompter is every question the launcher asks the user.
type prompter interface {
	// Confirm asks a yes/no question. Anything but "y" is a no.
	Confirm(question string) (bool, error)
	// Pause blocks until the user hits enter.
	Pause(message string) error
}

// linePrompter reads plain text answers, one per line.
type linePrompter struct {
	in  io.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: in, out: out}
}

// readLine consumes input up to and including the next newline and nothing
// more. Children share stdin with the launcher, so bytes past the answer
// stay unread for them.
func (p *linePrompter) readLine() (string, error) {
	var line []byte
	b := make([]byte, 1)
	for {
		n, err := p.in.Read(b)
		if n == 1 {
			if b[0] == '\n' {
				break
			}
			line = append(line, b[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("cannot read answer: %w", err)
		}
	}
	return strings.TrimSpace(string(line)), nil
}

func (p *linePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/N): ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}

func (p *linePrompter) Pause(message string) error {
	fmt.Fprintf(p.out, "\n%s", message)
	_, err := p.readLine()
	return err
}

// formPrompter asks confirmations through a huh form. Pauses stay line based.
type formPrompter struct {
	*linePrompter
}

func (p formPrompter) Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return ok, nil
}

// newPrompter picks forms when both ends are a terminal.
func newPrompter(in, out *os.File) prompter {
	lp := newLinePrompter(in, out)
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return formPrompter{lp}
	}
	return lp
}
