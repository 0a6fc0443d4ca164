//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeAttrs(t *testing.T, dir string, attrs map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, value := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o644))
	}
}

func fakeSysfs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	// CH340 adapter: /sys/devices/pci0000:00/usb1/1-2/1-2:1.0/ttyUSB0
	usbDev := filepath.Join(root, "devices", "pci0000:00", "usb1", "1-2")
	writeAttrs(t, usbDev, map[string]string{
		"idVendor":     "1a86",
		"idProduct":    "7523",
		"manufacturer": "QinHeng Electronics",
		"product":      "USB Serial",
	})
	iface := filepath.Join(usbDev, "1-2:1.0")
	writeAttrs(t, iface, map[string]string{"bInterfaceNumber": "00"})

	// on-board UART: /sys/devices/platform/serial8250/tty/ttyS0
	platform := filepath.Join(root, "devices", "platform", "serial8250")
	writeAttrs(t, platform, map[string]string{"driver_override": "(null)"})

	for name, target := range map[string]string{"ttyUSB0": iface, "ttyS0": platform} {
		dir := filepath.Join(root, "class", "tty", name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.Symlink(target, filepath.Join(dir, "device")))
	}
	return root
}

func TestSysfsPortDetailsUSB(t *testing.T) {
	root := fakeSysfs(t)
	details := sysfsPortDetails(root, "/dev/ttyUSB0")
	require.Equal(t, &PortDetails{
		Name:         "/dev/ttyUSB0",
		IsUSB:        true,
		VID:          "1A86",
		PID:          "7523",
		Manufacturer: "QinHeng Electronics",
		Product:      "USB Serial",
	}, details)
}

func TestSysfsPortDetailsNotUSB(t *testing.T) {
	root := fakeSysfs(t)
	details := sysfsPortDetails(root, "/dev/ttyS0")
	require.Equal(t, &PortDetails{Name: "/dev/ttyS0"}, details)
}

func TestSysfsPortDetailsMissing(t *testing.T) {
	root := fakeSysfs(t)
	details := sysfsPortDetails(root, "/dev/ttyACM7")
	require.Equal(t, &PortDetails{Name: "/dev/ttyACM7"}, details)
}
