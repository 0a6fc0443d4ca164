package monitor

import (
	"bufio"
	"io"

	"github.com/abakum/serialmon/lines"
)

// TimestampLayout prefixes each printed line when timestamps are enabled.
const TimestampLayout = "15:04:05.000"

// Printer writes lines to the console and, optionally, a capture file.
type Printer struct {
	w          *bufio.Writer
	timestamps bool
}

// NewPrinter returns a Printer on out. A non-nil capture receives the same
// output.
func NewPrinter(out, capture io.Writer, timestamps bool) *Printer {
	if capture != nil {
		out = io.MultiWriter(out, capture)
	}
	return &Printer{w: bufio.NewWriter(out), timestamps: timestamps}
}

// Print writes one line and flushes it.
func (p *Printer) Print(l lines.Line) error {
	if p.timestamps {
		p.w.WriteString(l.Time.Format(TimestampLayout))
		p.w.WriteByte(' ')
	}
	p.w.WriteString(l.Text)
	p.w.WriteByte('\n')
	return p.w.Flush()
}
