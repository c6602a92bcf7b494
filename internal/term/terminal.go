// Package term implements the editor's dialogs and clipboard access for an
// interactive terminal.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"

	"github.com/fsr-protokoll/editor/internal/service"
)

// Terminal asks questions on out and reads answers from in. Hidden prompts
// switch off echo when in is a terminal.
type Terminal struct {
	in        *bufio.Reader
	out       io.Writer
	stdinfd   int
	assumeYes bool
	err       error
}

var _ service.Dialog = (*Terminal)(nil)

// NewTerminal creates a Terminal on stdin and stdout. With assumeYes every
// confirmation is answered yes without reading input.
func NewTerminal(assumeYes bool) *Terminal {
	return New(os.Stdin, os.Stdout, int(os.Stdin.Fd()), assumeYes)
}

// New creates a Terminal on arbitrary streams. fd is the descriptor behind
// in, or -1 when in is not a file.
func New(in io.Reader, out io.Writer, fd int, assumeYes bool) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, stdinfd: fd, assumeYes: assumeYes}
}

// Confirm prints q and reads y/N. Anything but an explicit yes declines.
func (t *Terminal) Confirm(_ context.Context, q service.Question) bool {
	fmt.Fprintf(t.out, "%s\n%s [y/N] ", q.Title, q.Message)
	if t.assumeYes {
		fmt.Fprintln(t.out, "y")
		return true
	}
	answer, err := t.readLine()
	if err != nil {
		t.err = xerrors.Errorf("failed to read answer: %w", err)
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "j", "ja", "s", "si", "sí", "д", "да":
		return true
	}
	return false
}

// Alert prints n. Errors are prefixed with "!".
func (t *Terminal) Alert(_ context.Context, n service.Notice) {
	prefix := ""
	if n.Destructive {
		prefix = "! "
	}
	if n.Title != "" {
		fmt.Fprintf(t.out, "%s%s: %s\n", prefix, n.Title, n.Message)
		return
	}
	fmt.Fprintf(t.out, "%s%s\n", prefix, n.Message)
}

// Prompt reads one line. End of input aborts the prompt.
func (t *Terminal) Prompt(_ context.Context, p service.PromptRequest) (string, bool) {
	fmt.Fprintf(t.out, "%s\n%s: ", p.Title, p.Message)
	if p.Hidden && t.stdinfd >= 0 && term.IsTerminal(t.stdinfd) {
		pwd, err := term.ReadPassword(t.stdinfd)
		fmt.Fprintln(t.out)
		if err != nil {
			t.err = xerrors.Errorf("failed to read password: %w", err)
			return "", false
		}
		return string(pwd), true
	}
	line, err := t.readLine()
	if err != nil {
		t.err = xerrors.Errorf("failed to read input: %w", err)
		return "", false
	}
	return line, true
}

// Err returns the last input failure, if any. A declined question after an
// input failure was not the user's choice.
func (t *Terminal) Err() error {
	return t.err
}

// readLine returns the next line without its line ending. A last line without
// a newline is returned as is; io.EOF only comes with no input at all.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
