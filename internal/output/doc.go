// Package output renders review text and error lines to the terminal.
//
// Color is applied only to the banner and error markers via fatih/color,
// which disables itself automatically on non-TTY output and under NO_COLOR.
// The model's review text is never transformed.
package output
