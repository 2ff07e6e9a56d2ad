package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors for terminal display, optionally with color.
type Formatter struct {
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

func (f *Formatter) paint(attr color.Attribute, s string) string {
	if !f.UseColor {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// Format renders err. Non-Orion errors are rendered as their message.
//
//	compile error[E2001]: undefined variable "fo"
//	  --> main.orn:1:6
//	   |
//	 1 | (dbg fo)
//	   |      ^
//	   = hint: did you mean 'foo'?
func (f *Formatter) Format(err error) string {
	e, ok := As(err)
	if !ok {
		return f.paint(color.FgRed, "error: ") + err.Error()
	}
	var b strings.Builder
	header := fmt.Sprintf("%s error[%s]", e.Code.Phase(), e.Code)
	b.WriteString(f.paint(color.FgHiRed, header))
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteString("\n")
	loc := e.Location
	if !loc.IsZero() {
		gutter := strings.Repeat(" ", len(fmt.Sprint(loc.Line)))
		b.WriteString(gutter)
		b.WriteString(f.paint(color.FgCyan, "--> "+loc.String()))
		b.WriteString("\n")
		if loc.Source != "" {
			pipe := f.paint(color.FgHiBlack, "|")
			fmt.Fprintf(&b, "%s %s\n", gutter, pipe)
			fmt.Fprintf(&b, "%s %s %s\n", f.paint(color.FgHiBlack, fmt.Sprint(loc.Line)), pipe, loc.Source)
			caret := strings.Repeat(" ", max(loc.Column-1, 0)) + f.paint(color.FgHiRed, "^")
			fmt.Fprintf(&b, "%s %s %s\n", gutter, pipe, caret)
		}
	}
	if hint := e.Hint(); hint != "" {
		b.WriteString(f.paint(color.FgHiYellow, "  = hint: "+hint))
		b.WriteString("\n")
	}
	return b.String()
}
