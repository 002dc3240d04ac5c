package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Styler writes result lines, colored when the output supports it.
type Styler struct {
	out *termenv.Output
}

// NewStyler detects the color profile of w.
func NewStyler(w io.Writer, opts ...termenv.OutputOption) *Styler {
	return &Styler{out: termenv.NewOutput(w, opts...)}
}

// Field prints "key: value" with a dimmed key.
func (s *Styler) Field(key string, value any) {
	k := s.out.String(key + ":").Foreground(s.out.Color("#818cf8"))
	v := s.out.String(fmt.Sprint(value)).Bold()
	fmt.Fprintf(s.out, "%s %s\n", k, v)
}

// OK prints a success line.
func (s *Styler) OK(format string, args ...any) {
	fmt.Fprintln(s.out, s.out.String(fmt.Sprintf(format, args...)).Foreground(s.out.Color("#34d399")))
}

// Warn prints a warning line.
func (s *Styler) Warn(format string, args ...any) {
	fmt.Fprintln(s.out, s.out.String("! "+fmt.Sprintf(format, args...)).Foreground(s.out.Color("#fb7185")))
}

// Plain prints text as is.
func (s *Styler) Plain(text string) {
	fmt.Fprint(s.out, text)
}
