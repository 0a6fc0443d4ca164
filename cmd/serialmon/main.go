// serialmon prints the text lines a device sends over a serial port.
//
//	$ serialmon /dev/ttyUSB0 --baud 9600
//	Reading from /dev/ttyUSB0... Press Ctrl+C to stop
//
//	[Sensors] DHT sensor initialized (for Temperature/Humidity)
//	[Sensors] I2C initialized
//	^C
//	Stopped by user
//	Serial port closed
package main

import (
	"context"
	"os"
)

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
