package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	serial "github.com/abakum/serialmon"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	mode, err := cfg.Mode()
	require.NoError(t, err)
	require.Equal(t, &serial.Mode{BaudRate: 9600, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}, mode)
	require.Equal(t, 2*time.Second, cfg.Settle)
	require.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
port: /dev/ttyACM0
baud: 115200
format: 7E1
settle: 500ms
timestamps: true
capture: /tmp/esp32.log
`))
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyACM0", cfg.Port)
	require.Equal(t, 115200, cfg.BaudRate)
	require.Equal(t, "7E1", cfg.Format)
	require.Equal(t, 500*time.Millisecond, cfg.Settle)
	require.Equal(t, time.Second, cfg.ReadTimeout)
	require.Equal(t, "utf-8", cfg.Encoding)
	require.True(t, cfg.Timestamps)
	require.False(t, cfg.Flush)
	require.Equal(t, "/tmp/esp32.log", cfg.Capture)
	require.NoError(t, cfg.Validate())
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("port: /dev/ttyUSB1\nbaudrate: 9600\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serialmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: /dev/ttyUSB3\nencoding: latin1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB3", cfg.Port)
	require.Equal(t, "latin1", cfg.Encoding)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty port":       func(c *Config) { c.Port = "" },
		"zero baud":        func(c *Config) { c.BaudRate = 0 },
		"bad format":       func(c *Config) { c.Format = "9N1" },
		"negative settle":  func(c *Config) { c.Settle = -time.Second },
		"negative timeout": func(c *Config) { c.ReadTimeout = -time.Second },
		"bad encoding":     func(c *Config) { c.Encoding = "klingon" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}

func TestModeErrorKeepsPortErrorCode(t *testing.T) {
	cfg := Default()
	cfg.Format = "8X1"
	_, err := cfg.Mode()
	var pe *serial.PortError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, serial.InvalidParity, pe.Code())
}
