//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serial

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeFromString(t *testing.T) {
	goodCases := map[string]*Mode{
		"8N1":   {DataBits: 8, Parity: NoParity, StopBits: OneStopBit},
		"7S2":   {DataBits: 7, Parity: SpaceParity, StopBits: TwoStopBits},
		"7e1":   {DataBits: 7, Parity: EvenParity, StopBits: OneStopBit},
		"5O1.5": {DataBits: 5, Parity: OddParity, StopBits: OnePointFiveStopBits},
	}

	badCases := map[string]PortErrorCode{
		"9N1": InvalidDataBits,
		"8N3": InvalidStopBits,
		"8R1": InvalidParity,
		"8N":  InvalidDataBits,
		"":    InvalidDataBits,
	}

	for s, m := range goodCases {
		mode := &Mode{}
		require.NoError(t, ModeFromString(s, mode), "mode %q", s)
		require.Equal(t, m, mode, "mode %q", s)
	}

	for s, code := range badCases {
		mode := &Mode{}
		err := ModeFromString(s, mode)
		var pe *PortError
		require.True(t, errors.As(err, &pe), "mode %q should fail with a PortError, got %v", s, err)
		require.Equal(t, code, pe.Code(), "mode %q", s)
		require.Equal(t, &Mode{}, mode, "mode %q must not be modified", s)
	}
}

func TestModeFromStringKeepsBaudRate(t *testing.T) {
	mode := &Mode{BaudRate: 115200}
	require.NoError(t, ModeFromString("7E2", mode))
	require.Equal(t, 115200, mode.BaudRate)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "9600_8N1", Mode{}.String())
	require.Equal(t, "115200_7E2", Mode{BaudRate: 115200, DataBits: 7, Parity: EvenParity, StopBits: TwoStopBits}.String())
	require.Equal(t, "4800_8M1.5", Mode{BaudRate: 4800, DataBits: 8, Parity: MarkParity, StopBits: OnePointFiveStopBits}.String())
}

func TestPortErrorMessage(t *testing.T) {
	err := &PortError{code: PortBusy}
	require.Equal(t, "Serial port busy", err.Error())

	cause := fmt.Errorf("device or resource busy")
	err = &PortError{code: PortBusy, causedBy: cause}
	require.Equal(t, "Serial port busy: device or resource busy", err.Error())
	require.True(t, errors.Is(err, cause))
	require.Equal(t, PortBusy, err.Code())
}
