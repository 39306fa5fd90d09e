//go:build !windows

package console

const terminalPath = "/dev/tty"
