// @lixen: #focus{sys[term]}
// Package terminal provides raw terminal sessions for the renderer and key decoder.
//
// Features:
//   - Stdio backend over golang.org/x/term raw mode and non-blocking unix poll reads
//   - /dev/tty backend over tcell's Tty, usable when stdio is redirected
//   - Scoped sessions that restore the terminal on return, error and panic
//   - Color capability detection from the environment
//   - Emergency reset for crash handlers
//
// A Session satisfies both render.Output and input.Source.
package terminal
