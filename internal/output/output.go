package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	bannerColor = color.New(color.FgCyan, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
)

// Render writes the review text under a banner. The text itself is passed
// through untouched.
func Render(w io.Writer, review string) error {
	ew := &errWriter{w: w}
	ew.println("")
	ew.colorln(bannerColor, "=== AI CODE REVIEW ===")
	ew.println("")
	ew.println(strings.TrimSpace(review))
	return ew.err
}

// RenderError writes a clearly marked error line. The hook still exits 0;
// this line is all the user sees of a failed run.
func RenderError(w io.Writer, err error) {
	errorColor.Fprint(w, "critic: ")
	fmt.Fprintln(w, err)
}

// errWriter captures the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func (ew *errWriter) colorln(c *color.Color, s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = c.Fprintln(ew.w, s)
}
