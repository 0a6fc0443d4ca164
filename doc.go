//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

/*
Package serial opens serial ports on Linux and macOS for serialmon, a tool
that prints the text lines a device sends.

The available ports are returned by GetPortsList, in natural order:

	ports, err := serial.GetPortsList()
	if err != nil {
		log.Fatal(err)
	}
	for _, port := range ports {
		fmt.Printf("Found port: %v\n", port)
	}

Open takes the port name and a Mode. Zero fields of the Mode mean 9600 baud,
8 data bits, no parity and one stop bit. ModeFromString fills a Mode from the
short notation used on the command line:

	mode := &serial.Mode{BaudRate: 115200}
	if err := serial.ModeFromString("7E1", mode); err != nil {
		log.Fatal(err)
	}
	port, err := serial.Open("/dev/ttyUSB0", mode)
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

Read blocks until data arrives or the read timeout set with SetReadTimeout
expires, in which case it returns 0 bytes and no error. ReadContext does the
same but also returns when the context is done:

	buff := make([]byte, 100)
	n, err := port.ReadContext(ctx, buff)

Closing the port from another goroutine wakes up a pending Read, which then
fails with a PortError of code PortClosed.

Every error returned by this package is a *PortError; its Code tells what
went wrong.

This library doesn't make use of cgo and "C" package.
*/
package serial
