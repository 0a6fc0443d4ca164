//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux || darwin

package unixutils

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrPipeClosed is returned when operating on a closed Pipe.
var ErrPipeClosed = errors.New("pipe not opened")

// Pipe represents a unix-pipe. It is used to wake up a goroutine blocked
// in Select: the waiter adds ReadFD to its read set and another goroutine
// calls Signal.
type Pipe struct {
	mu     sync.Mutex
	opened bool
	rd     int
	wr     int
}

// NewPipe creates a new pipe
func NewPipe() (*Pipe, error) {
	fds := []int{0, 0}
	if err := unix.Pipe(fds); err != nil {
		return nil, err
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return &Pipe{
		rd:     fds[0],
		wr:     fds[1],
		opened: true,
	}, nil
}

// ReadFD returns the file handle for the read side of the pipe.
func (p *Pipe) ReadFD() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return -1
	}
	return p.rd
}

// WriteFD returns the file handle for the write side of the pipe.
func (p *Pipe) WriteFD() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return -1
	}
	return p.wr
}

// Write to the pipe the content of data. Returns the number of bytes written.
func (p *Pipe) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return 0, ErrPipeClosed
	}
	return unix.Write(p.wr, data)
}

// Read from the pipe into the data array. Returns the number of bytes read.
func (p *Pipe) Read(data []byte) (int, error) {
	p.mu.Lock()
	rd, opened := p.rd, p.opened
	p.mu.Unlock()
	if !opened {
		return 0, ErrPipeClosed
	}
	return unix.Read(rd, data)
}

// Signal makes the read side readable.
func (p *Pipe) Signal() error {
	_, err := p.Write([]byte{0})
	return err
}

// Close the pipe
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return ErrPipeClosed
	}
	err1 := unix.Close(p.rd)
	err2 := unix.Close(p.wr)
	p.opened = false
	if err1 != nil {
		return err1
	}
	return err2
}
