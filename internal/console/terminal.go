package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrNoTerminal means stdin carries the post content and there is no
// controlling terminal left to answer prompts.
var ErrNoTerminal = errors.New("no terminal available for confirmation; use --dry-run or run from a terminal")

var openTerminal = func() (*os.File, error) {
	return os.Open(terminalPath)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ForPipedStdin returns a console whose prompts are answered on the
// controlling terminal when stdin is a pipe or file. The returned close func
// releases the terminal.
func ForPipedStdin(stdin *os.File, out io.Writer) (*Console, func() error, error) {
	if isTerminal(stdin) {
		return New(stdin, out), func() error { return nil }, nil
	}

	tty, err := openTerminal()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	return New(tty, out), tty.Close, nil
}
