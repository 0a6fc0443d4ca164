//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux || darwin

package unixutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSelectTimeout(t *testing.T) {
	p, err := NewPipe()
	require.NoError(t, err)
	defer p.Close()

	start := time.Now()
	res, err := Select(NewFDSet(p.ReadFD()), nil, nil, 20*time.Millisecond)
	require.NoError(t, err)
	require.False(t, res.IsReadable(p.ReadFD()))
	require.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestSignalWakesSelect(t *testing.T) {
	p, err := NewPipe()
	require.NoError(t, err)
	defer p.Close()

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Signal()
	}()
	res, err := Select(NewFDSet(p.ReadFD()), nil, nil, -1)
	require.NoError(t, err)
	require.True(t, res.IsReadable(p.ReadFD()))

	buf := make([]byte, 4)
	n, err := p.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestClosedPipe(t *testing.T) {
	p, err := NewPipe()
	require.NoError(t, err)
	require.NoError(t, p.Close())

	require.Equal(t, -1, p.ReadFD())
	require.Equal(t, -1, p.WriteFD())
	require.ErrorIs(t, p.Signal(), ErrPipeClosed)
	require.ErrorIs(t, p.Close(), ErrPipeClosed)
}

func TestFDSetSkipsNegative(t *testing.T) {
	set := NewFDSet(-1, 3)
	set.Add(7, -1)
	require.Equal(t, []int{3, 7}, set.fds)
	require.Equal(t, 7, set.max)
}

func TestSelectWritable(t *testing.T) {
	p, err := NewPipe()
	require.NoError(t, err)
	defer p.Close()

	res, err := Select(nil, NewFDSet(p.WriteFD()), NewFDSet(p.WriteFD()), 0)
	require.NoError(t, err)
	require.True(t, res.IsWritable(p.WriteFD()))
	require.False(t, res.IsError(p.WriteFD()))
	require.False(t, res.IsReadable(p.WriteFD()))
}
