// Package monitor prints the lines a serial device sends until it is told
// to stop.
package monitor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/op/go-logging"

	"github.com/abakum/serialmon/lines"
)

var log = logging.MustGetLogger("monitor")

// Stats counts what a Monitor has seen.
type Stats struct {
	Lines     int            // lines printed, partial ones included
	Partial   int            // lines printed without a terminating newline
	Fallbacks int            // firmware sensor fallback reports
	Bytes     int            // bytes consumed from the device
	Tags      map[string]int // lines per firmware tag
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d lines (%d partial), %d bytes", s.Lines, s.Partial, s.Bytes)
	if len(s.Tags) > 0 {
		tags := make([]string, 0, len(s.Tags))
		for tag := range s.Tags {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		b.WriteString(", tags:")
		for _, tag := range tags {
			fmt.Fprintf(&b, " [%s]=%d", tag, s.Tags[tag])
		}
	}
	return b.String()
}

// Monitor copies lines from a device to a Printer.
type Monitor struct {
	reader  *lines.Reader
	printer *Printer
	stats   Stats
}

// New returns a Monitor reading from src.
func New(src lines.Source, printer *Printer, opts ...lines.Option) *Monitor {
	return &Monitor{
		reader:  lines.NewReader(src, opts...),
		printer: printer,
		stats:   Stats{Tags: map[string]int{}},
	}
}

// Run prints lines until ctx is done or the device fails. When ctx ends
// the returned error is ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	for {
		l, err := m.reader.ReadLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		m.record(l)
		if err := m.printer.Print(l); err != nil {
			return fmt.Errorf("print: %w", err)
		}
	}
}

// Stats returns a snapshot of the counters. It must not be called
// concurrently with Run.
func (m *Monitor) Stats() Stats {
	s := m.stats
	s.Tags = make(map[string]int, len(m.stats.Tags))
	for k, v := range m.stats.Tags {
		s.Tags[k] = v
	}
	return s
}

func (m *Monitor) record(l lines.Line) {
	m.stats.Lines++
	m.stats.Bytes += len(l.Raw)
	if l.Partial {
		m.stats.Partial++
	} else {
		m.stats.Bytes++
	}

	tag, msg := ParseTag(l.Text)
	if tag == "" {
		return
	}
	m.stats.Tags[tag]++
	if IsFallback(tag) {
		m.stats.Fallbacks++
		log.Debugf("sensor fallback: %s", msg)
	}
}
