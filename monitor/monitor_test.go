package monitor

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abakum/serialmon/lines"
)

func TestParseTag(t *testing.T) {
	cases := []struct {
		text, tag, msg string
	}{
		{"[Sensors] I2C initialized", "Sensors", "I2C initialized"},
		{"[FALLBACK - RANDOM VALUE] ENS160 not ready! CO2 using: 812.00 ppm", "FALLBACK - RANDOM VALUE", "ENS160 not ready! CO2 using: 812.00 ppm"},
		{"[pH Sensor] pH: 6.50", "pH Sensor", "pH: 6.50"},
		{"[FALLBACK]pH read failed (error 226)! Using: 6.1", "FALLBACK", "pH read failed (error 226)! Using: 6.1"},
		{"plain text", "", "plain text"},
		{"[unterminated", "", "[unterminated"},
		{"", "", ""},
	}
	for _, c := range cases {
		tag, msg := ParseTag(c.text)
		assert.Equal(t, c.tag, tag, c.text)
		assert.Equal(t, c.msg, msg, c.text)
	}
}

func TestIsFallback(t *testing.T) {
	assert.True(t, IsFallback("FALLBACK"))
	assert.True(t, IsFallback("FALLBACK - RANDOM VALUE"))
	assert.True(t, IsFallback("fallback"))
	assert.False(t, IsFallback("Sensors"))
	assert.False(t, IsFallback(""))
}

func TestPrinterTimestamps(t *testing.T) {
	var out, capture bytes.Buffer
	p := NewPrinter(&out, &capture, true)
	at := time.Date(2024, 5, 1, 13, 4, 5, 678_000_000, time.Local)
	require.NoError(t, p.Print(lines.Line{Text: "[Sensors] I2C initialized", Time: at}))
	require.Equal(t, "13:04:05.678 [Sensors] I2C initialized\n", out.String())
	require.Equal(t, out.String(), capture.String())
}

func TestPrinterPlain(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, nil, false)
	require.NoError(t, p.Print(lines.Line{Text: "hello", Time: time.Now()}))
	require.NoError(t, p.Print(lines.Line{Text: ""}))
	require.Equal(t, "hello\n\n", out.String())
}

func TestMonitorStats(t *testing.T) {
	port := newFakePort()
	port.data <- []byte("[Sensors] begin\n[FALLBACK] Soil temp read failed! Using: 24.1 C\n")
	port.data <- []byte("[FALLBACK - RANDOM VALUE] Temperature sensor failed! Using: 29.80 C\nraw\n")
	close(port.data)

	var out bytes.Buffer
	m := New(port, NewPrinter(&out, nil, false))
	err := m.Run(context.Background())
	require.Error(t, err)

	stats := m.Stats()
	require.Equal(t, 4, stats.Lines)
	require.Equal(t, 0, stats.Partial)
	require.Equal(t, 2, stats.Fallbacks)
	require.Equal(t, out.Len(), stats.Bytes)
	require.Equal(t, map[string]int{
		"Sensors":                 1,
		"FALLBACK":                1,
		"FALLBACK - RANDOM VALUE": 1,
	}, stats.Tags)
	require.Equal(t, "4 lines (0 partial), "+strconv.Itoa(out.Len())+" bytes, tags: [FALLBACK]=1 [FALLBACK - RANDOM VALUE]=1 [Sensors]=1", stats.String())

	// the snapshot is a copy
	stats.Tags["Sensors"] = 100
	require.Equal(t, 1, m.Stats().Tags["Sensors"])
}
