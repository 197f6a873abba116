package handler

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a password prompt is needed but the input
// is not a terminal.
var ErrNoTerminal = errors.New("password must be given as an argument when input is not a terminal")

// Test seams for the terminal.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// TerminalPasswordReader reads passwords from a terminal with echo off.
type TerminalPasswordReader struct {
	fd  int
	out io.Writer
}

// NewTerminalPasswordReader creates a reader prompting on out and reading
// from in.
func NewTerminalPasswordReader(in *os.File, out io.Writer) *TerminalPasswordReader {
	return &TerminalPasswordReader{
		fd:  int(in.Fd()),
		out: out,
	}
}

// ReadPassword implements PasswordReader.
func (r *TerminalPasswordReader) ReadPassword(prompt string) (string, error) {
	if !isTerminal(r.fd) {
		return "", ErrNoTerminal
	}

	if _, err := fmt.Fprint(r.out, prompt); err != nil {
		return "", err
	}

	pw, err := readPassword(r.fd)
	fmt.Fprintln(r.out)
	if err != nil {
		return "", err
	}

	return string(pw), nil
}
