//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux && !ppc64le && !ppc64

package serial

import "golang.org/x/sys/unix"

func (port *unixPort) setSpecialBaudrate(speed int) error {
	if speed <= 0 {
		return &PortError{code: InvalidSpeed}
	}
	settings, err := unix.IoctlGetTermios(port.handle, unix.TCGETS2)
	if err != nil {
		return &PortError{code: InvalidSpeed, causedBy: err}
	}
	settings.Cflag &^= unix.CBAUD
	settings.Cflag |= unix.BOTHER
	settings.Ispeed = uint32(speed)
	settings.Ospeed = uint32(speed)
	if err := unix.IoctlSetTermios(port.handle, unix.TCSETS2, settings); err != nil {
		return &PortError{code: InvalidSpeed, causedBy: err}
	}
	return nil
}
