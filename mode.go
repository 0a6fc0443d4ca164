//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serial

import (
	"fmt"
	"strings"
)

var parityLetters = map[byte]Parity{
	'N': NoParity,
	'O': OddParity,
	'E': EvenParity,
	'M': MarkParity,
	'S': SpaceParity,
}

var stopBitsStrings = map[string]StopBits{
	"1":   OneStopBit,
	"1.5": OnePointFiveStopBits,
	"2":   TwoStopBits,
}

// ModeFromString fills DataBits, Parity and StopBits of mode from the usual
// short notation, for example "8N1", "7E2" or "8O1.5". BaudRate is untouched.
func ModeFromString(s string, mode *Mode) error {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 {
		return &PortError{code: InvalidDataBits, causedBy: fmt.Errorf("mode %q too short", s)}
	}

	bits := int(s[0] - '0')
	if bits < 5 || bits > 8 {
		return &PortError{code: InvalidDataBits, causedBy: fmt.Errorf("mode %q", s)}
	}

	parity, ok := parityLetters[s[1]]
	if !ok {
		return &PortError{code: InvalidParity, causedBy: fmt.Errorf("mode %q", s)}
	}

	stop, ok := stopBitsStrings[s[2:]]
	if !ok {
		return &PortError{code: InvalidStopBits, causedBy: fmt.Errorf("mode %q", s)}
	}

	mode.DataBits = bits
	mode.Parity = parity
	mode.StopBits = stop
	return nil
}

// String returns the mode in "9600_8N1" notation.
func (m Mode) String() string {
	baud := m.BaudRate
	if baud == 0 {
		baud = 9600
	}
	bits := m.DataBits
	if bits == 0 {
		bits = 8
	}
	parity := "N"
	for l, p := range parityLetters {
		if p == m.Parity {
			parity = string(l)
		}
	}
	stop := "1"
	for str, sb := range stopBitsStrings {
		if sb == m.StopBits {
			stop = str
		}
	}
	return fmt.Sprintf("%d_%d%s%s", baud, bits, parity, stop)
}
