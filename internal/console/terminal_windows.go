//go:build windows

package console

const terminalPath = "CONIN$"
