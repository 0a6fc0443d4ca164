//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux || darwin

package unixutils

import (
	"time"

	"github.com/creack/goselect"
)

// FDSet is a set of file descriptors suitable for a select call
type FDSet struct {
	fds []int
	max int
}

// NewFDSet creates a set of file descriptors suitable for a Select call.
func NewFDSet(fds ...int) *FDSet {
	s := &FDSet{max: -1}
	s.Add(fds...)
	return s
}

// Add adds the file descriptors passed as parameter to the FDSet.
func (s *FDSet) Add(fds ...int) {
	for _, fd := range fds {
		if fd < 0 {
			continue
		}
		s.fds = append(s.fds, fd)
		if fd > s.max {
			s.max = fd
		}
	}
}

func (s *FDSet) native() *goselect.FDSet {
	if s == nil {
		return nil
	}
	set := &goselect.FDSet{}
	for _, fd := range s.fds {
		set.Set(uintptr(fd))
	}
	return set
}

// FDResultSets contains the result of a Select operation.
type FDResultSets struct {
	readable  *goselect.FDSet
	writeable *goselect.FDSet
	errors    *goselect.FDSet
}

func isSet(set *goselect.FDSet, fd int) bool {
	return set != nil && fd >= 0 && set.IsSet(uintptr(fd))
}

// IsReadable test if a file descriptor is ready to be read.
func (r *FDResultSets) IsReadable(fd int) bool {
	return isSet(r.readable, fd)
}

// IsWritable test if a file descriptor is ready to be written.
func (r *FDResultSets) IsWritable(fd int) bool {
	return isSet(r.writeable, fd)
}

// IsError test if a file descriptor is in error state.
func (r *FDResultSets) IsError(fd int) bool {
	return isSet(r.errors, fd)
}

// Select performs a select system call,
// file descriptors in the rd set are tested for read-events,
// file descriptors in the wr set are tested for write-events and
// file descriptors in the er set are tested for error-events.
// The function will block until an event happens or the timeout expires,
// a negative timeout blocks forever.
func Select(rd, wr, er *FDSet, timeout time.Duration) (FDResultSets, error) {
	max := -1
	for _, s := range []*FDSet{rd, wr, er} {
		if s != nil && s.max > max {
			max = s.max
		}
	}
	res := FDResultSets{
		readable:  rd.native(),
		writeable: wr.native(),
		errors:    er.native(),
	}
	if timeout < 0 {
		timeout = -1
	}
	err := goselect.Select(max+1, res.readable, res.writeable, res.errors, timeout)
	return res, err
}
