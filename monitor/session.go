package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	serial "github.com/abakum/serialmon"
	"github.com/abakum/serialmon/config"
	"github.com/abakum/serialmon/lines"
)

// Port is the part of serial.Port a session uses.
type Port interface {
	lines.Source
	SetReadTimeout(t time.Duration) error
	InWaiting() (int, error)
	ResetInputBuffer() error
	Close() error
}

// Opener opens the named port with the given mode.
type Opener func(name string, mode *serial.Mode) (Port, error)

// OpenSerial opens a real serial port.
func OpenSerial(name string, mode *serial.Mode) (Port, error) {
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Session opens the port described by cfg, waits for the device to settle
// and prints its lines to out until ctx is done. The port is always closed
// before Session returns. Cancelling ctx is a normal stop and yields a nil
// error.
func Session(ctx context.Context, cfg *config.Config, open Opener, out io.Writer) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	mode, _ := cfg.Mode()
	dec, _ := cfg.Decoder()

	var capture io.Writer
	if cfg.Capture != "" {
		f, err := os.OpenFile(cfg.Capture, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return Stats{}, fmt.Errorf("open capture file: %w", err)
		}
		defer f.Close()
		capture = f
	}

	port, err := open(cfg.Port, mode)
	if err != nil {
		return Stats{}, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	log.Infof("opened %s at %s", cfg.Port, mode)
	defer func() {
		if err := port.Close(); err != nil {
			log.Warningf("close %s: %v", cfg.Port, err)
		}
		fmt.Fprintln(out, "Serial port closed")
	}()

	timeout := cfg.ReadTimeout
	if timeout == 0 {
		timeout = serial.NoTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		return Stats{}, fmt.Errorf("set read timeout: %w", err)
	}

	if !sleep(ctx, cfg.Settle) {
		fmt.Fprintln(out, "\nStopped by user")
		return Stats{}, nil
	}
	if cfg.Flush {
		flushInput(port)
	}

	fmt.Fprintf(out, "Reading from %s... Press Ctrl+C to stop\n\n", cfg.Port)

	m := New(port, NewPrinter(out, capture, cfg.Timestamps), lines.WithDecoder(dec))
	err = m.Run(ctx)
	stats := m.Stats()
	log.Infof("%s: %s", cfg.Port, stats)
	if stats.Fallbacks > 0 {
		log.Warningf("%d sensor readings used fallback values", stats.Fallbacks)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(out, "\nStopped by user")
		return stats, nil
	}
	return stats, err
}

// sleep waits for d or until ctx is done, reporting whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func flushInput(port Port) {
	n, err := port.InWaiting()
	if err != nil {
		log.Warningf("query input queue: %v", err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		log.Warningf("flush input: %v", err)
		return
	}
	log.Debugf("discarded %d bytes received while settling", n)
}
