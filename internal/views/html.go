package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first write error
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf writes trusted markup with every argument HTML-escaped. Arguments are
// stringified first, so format verbs must be %s.
func (h *htmlWriter) rawf(format string, args ...interface{}) {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = templ.EscapeString(fmt.Sprint(a))
	}
	h.raw(fmt.Sprintf(format, escaped...))
}

func classes(base string, extra map[string]bool) string {
	out := base
	for name, on := range extra {
		if on {
			out += " " + name
		}
	}
	return out
}
