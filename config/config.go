// Package config holds the settings of a monitoring session and loads them
// from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	serial "github.com/abakum/serialmon"
	"github.com/abakum/serialmon/lines"
)

const (
	// DefaultPort is the port used when none is given
	DefaultPort = "/dev/ttyUSB0"
	// DefaultBaudRate is the speed most sketches print at
	DefaultBaudRate = 9600
	// DefaultFormat is 8 data bits, no parity and one stop bit
	DefaultFormat = "8N1"
	// DefaultSettle is the wait after opening, long enough for a board to reboot
	DefaultSettle = 2 * time.Second
	// DefaultReadTimeout is how long an unterminated line is held back
	DefaultReadTimeout = time.Second
	// DefaultEncoding is the text encoding of the device output
	DefaultEncoding = "utf-8"
)

// Config describes one monitoring session.
type Config struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud"`
	// Format is the character framing in short notation, e.g. "8N1".
	Format string `yaml:"format"`
	// Settle is how long to wait after opening the port before reading;
	// most boards reset when the port is opened.
	Settle time.Duration `yaml:"settle"`
	// ReadTimeout bounds how long an unterminated line is held back
	// before it is printed as is.
	ReadTimeout time.Duration `yaml:"timeout"`
	Encoding    string        `yaml:"encoding"`
	Timestamps  bool          `yaml:"timestamps"`
	// Flush discards whatever the device sent during the settle delay.
	Flush bool `yaml:"flush"`
	// Capture, when set, is a file the received lines are appended to.
	Capture string `yaml:"capture"`
}

// Default returns the settings of the original bench setup: 9600 baud, 8N1,
// two seconds of settle time and a one second read timeout.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		BaudRate:    DefaultBaudRate,
		Format:      DefaultFormat,
		Settle:      DefaultSettle,
		ReadTimeout: DefaultReadTimeout,
		Encoding:    DefaultEncoding,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("no serial port given")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Settle < 0 {
		return fmt.Errorf("invalid settle delay %s", c.Settle)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("invalid read timeout %s", c.ReadTimeout)
	}
	if _, err := c.Decoder(); err != nil {
		return err
	}
	return nil
}

// Mode returns the serial mode described by BaudRate and Format.
func (c *Config) Mode() (*serial.Mode, error) {
	mode := &serial.Mode{BaudRate: c.BaudRate}
	format := c.Format
	if format == "" {
		format = DefaultFormat
	}
	if err := serial.ModeFromString(format, mode); err != nil {
		return nil, fmt.Errorf("invalid format %q: %w", format, err)
	}
	return mode, nil
}

// Decoder returns the line decoder for Encoding.
func (c *Config) Decoder() (lines.Decoder, error) {
	return lines.LookupDecoder(c.Encoding)
}
