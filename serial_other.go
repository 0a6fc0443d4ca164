//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build !linux && !darwin

package serial

func nativeOpen(portName string, mode *Mode) (Port, error) {
	return nil, &PortError{code: FunctionNotImplemented}
}

func nativeGetPortsList() ([]string, error) {
	return nil, &PortError{code: FunctionNotImplemented}
}
