//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serial_test

import (
	"context"
	"fmt"
	"log"
	"time"

	serial "github.com/abakum/serialmon"
)

func ExampleGetPortsList() {
	ports, err := serial.GetPortsList()
	if err != nil {
		log.Fatal(err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found!")
	}
	for _, port := range ports {
		fmt.Printf("Found port: %v\n", port)
	}
}

func ExampleModeFromString() {
	mode := &serial.Mode{BaudRate: 57600}
	if err := serial.ModeFromString("7e1", mode); err != nil {
		log.Fatal(err)
	}
	fmt.Println(mode)
	// Output: 57600_7E1
}

func ExamplePort_ReadContext() {
	port, err := serial.Open("/dev/ttyUSB0", &serial.Mode{BaudRate: 9600})
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buff := make([]byte, 100)
	for {
		n, err := port.ReadContext(ctx, buff)
		if err != nil {
			log.Print(err)
			return
		}
		fmt.Printf("%s", buff[:n])
	}
}
