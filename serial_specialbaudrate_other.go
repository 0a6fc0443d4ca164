//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build darwin || (linux && (ppc64le || ppc64))

package serial

func (port *unixPort) setSpecialBaudrate(speed int) error {
	return &PortError{code: InvalidSpeed}
}
