// Package console is the operator's terminal: prompts on the way in, drafts
// and instructions on the way out.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Out is where operator-facing text is written.
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// Ask prints prompt and returns the next line without its line ending. EOF
// after partial input returns that input.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm is a y/N question. Only "y" or "Y" confirms; EOF declines.
func (c *Console) Confirm(prompt string) (bool, error) {
	answer, err := c.Ask(prompt)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
