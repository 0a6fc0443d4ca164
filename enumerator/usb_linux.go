//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package enumerator

import (
	"os"
	"path/filepath"
	"strings"

	serial "github.com/abakum/serialmon"
)

const sysfsRoot = "/sys"

func nativeGetDetailedPortsList() ([]*PortDetails, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, &PortEnumerationError{causedBy: err}
	}

	res := make([]*PortDetails, 0, len(ports))
	for _, port := range ports {
		res = append(res, sysfsPortDetails(sysfsRoot, port))
	}
	return res, nil
}

// sysfsPortDetails follows /sys/class/tty/<name>/device and walks up the
// device tree until it finds the USB device owning the interface.
func sysfsPortDetails(root, name string) *PortDetails {
	details := &PortDetails{Name: name}

	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return details
	}
	dir, err := filepath.EvalSymlinks(filepath.Join(root, "class", "tty", filepath.Base(name), "device"))
	if err != nil {
		return details
	}

	for ; strings.HasPrefix(dir, root+string(filepath.Separator)); dir = filepath.Dir(dir) {
		vid := readSysfsAttr(dir, "idVendor")
		if vid == "" {
			continue
		}
		details.IsUSB = true
		details.VID = strings.ToUpper(vid)
		details.PID = strings.ToUpper(readSysfsAttr(dir, "idProduct"))
		details.SerialNumber = readSysfsAttr(dir, "serial")
		details.Manufacturer = readSysfsAttr(dir, "manufacturer")
		details.Product = readSysfsAttr(dir, "product")
		break
	}
	return details
}

func readSysfsAttr(dir, attr string) string {
	data, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
