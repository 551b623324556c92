package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var ErrNoConsole = errors.New("no console available for password prompt. Password must be provided via command line parameters")

// PasswordPrompter asks the user for a password without echoing it.
type PasswordPrompter interface {
	Interactive() bool
	ReadPassword(prompt string) (string, error)
}

type terminalPrompter struct {
	in  *os.File
	out io.Writer
}

func NewTerminalPrompter(in *os.File, out io.Writer) PasswordPrompter {
	return &terminalPrompter{in: in, out: out}
}

func (p *terminalPrompter) Interactive() bool {
	fd := p.in.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *terminalPrompter) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func (a *App) passwordFor(p commonParams) (string, error) {
	if p.Password != "" {
		return p.Password, nil
	}
	if a.Prompter == nil || !a.Prompter.Interactive() {
		return "", ErrNoConsole
	}
	return a.Prompter.ReadPassword("Give password: ")
}
