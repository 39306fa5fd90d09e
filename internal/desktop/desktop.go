// Package desktop wraps the system clipboard and browser.
package desktop

import (
	"errors"
	"io"

	"github.com/atotto/clipboard"
	"github.com/cli/browser"
)

// ErrUnsupported means the platform has no usable clipboard tool.
var ErrUnsupported = errors.New("clipboard not available on this system")

func init() {
	// browser launchers inherit stdio by default; keep their chatter out of
	// the operator's terminal.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

type Clipboard struct{}

func (Clipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

type Browser struct{}

func (Browser) Open(url string) error {
	return browser.OpenURL(url)
}
