// @lixen: #focus{sys[input,decode]}
// Package input decodes raw terminal bytes into logical keys.
//
// The Decoder is a pure state machine: it never reads a clock or a file. Time is passed
// in so that a lone ESC can be told apart from the start of a CSI sequence by deadline.
// A Reader drives the Decoder against a byte Source with blocking and polling variants.
package input
