//go:build !linux

package terminal

// resetTerminalMode is a no-op where TCGETS is unavailable; Session.Exit restores through x/term
func resetTerminalMode() {}
