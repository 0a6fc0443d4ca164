//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux || darwin

package serial

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abakum/serialmon/unixutils"
	"github.com/fvbommel/sortorder"
	"golang.org/x/sys/unix"
)

type unixPort struct {
	handle int

	readTimeout time.Duration
	closeLock   sync.RWMutex
	closeSignal *unixutils.Pipe
	opened      uint32

	// readLock serializes ReadContext calls, which share cancelSignal
	readLock     sync.Mutex
	cancelSignal *unixutils.Pipe
}

func (port *unixPort) Close() error {
	if !atomic.CompareAndSwapUint32(&port.opened, 1, 0) {
		return nil
	}

	// Wake up pending reads, then wait for them to leave
	port.closeSignal.Signal()
	port.closeLock.Lock()
	defer port.closeLock.Unlock()

	port.releaseExclusiveAccess()
	err := unix.Close(port.handle)
	if perr := port.closeSignal.Close(); err == nil {
		err = perr
	}
	if perr := port.cancelSignal.Close(); err == nil {
		err = perr
	}
	return err
}

func (port *unixPort) Read(p []byte) (int, error) {
	return port.read(nil, p, -1)
}

func (port *unixPort) ReadContext(ctx context.Context, p []byte) (int, error) {
	if ctx.Err() != nil {
		return 0, &PortError{code: ReadCanceled, causedBy: context.Cause(ctx)}
	}
	if ctx.Done() == nil {
		return port.read(nil, p, -1)
	}

	port.readLock.Lock()
	defer port.readLock.Unlock()
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		port.cancelSignal.Signal()
	})
	defer func() {
		if stop() {
			return
		}
		// Consume the byte written by the AfterFunc so the next call
		// does not see a stale cancellation.
		<-fired
		port.cancelSignal.Read(make([]byte, 1))
	}()
	return port.read(ctx, p, port.cancelSignal.ReadFD())
}

func (port *unixPort) read(ctx context.Context, p []byte, cancelFD int) (int, error) {
	port.closeLock.RLock()
	defer port.closeLock.RUnlock()
	if atomic.LoadUint32(&port.opened) != 1 {
		return 0, &PortError{code: PortClosed}
	}

	var deadline time.Time
	if port.readTimeout != NoTimeout {
		deadline = time.Now().Add(port.readTimeout)
	}

	closeFD := port.closeSignal.ReadFD()
	fds := unixutils.NewFDSet(port.handle, closeFD, cancelFD)
	for {
		timeout := time.Duration(-1)
		if port.readTimeout != NoTimeout {
			timeout = time.Until(deadline)
			if timeout < 0 {
				// a negative timeout means "no-timeout" in Select(...)
				timeout = 0
			}
		}
		res, err := unixutils.Select(fds, nil, fds, timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, &PortError{code: ReadFailed, causedBy: err}
		}
		if res.IsReadable(closeFD) {
			return 0, &PortError{code: PortClosed}
		}
		if res.IsReadable(cancelFD) {
			return 0, &PortError{code: ReadCanceled, causedBy: context.Cause(ctx)}
		}
		if res.IsError(port.handle) {
			return 0, &PortError{code: ReadFailed, causedBy: unix.EIO}
		}
		if !res.IsReadable(port.handle) {
			if port.readTimeout != NoTimeout && !time.Now().Before(deadline) {
				return 0, nil
			}
			continue
		}
		n, err := unix.Read(port.handle, p)
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		// A disconnected device leaves the port readable with
		// zero-length data.
		if n == 0 && err == nil {
			return 0, &PortError{code: PortClosed}
		}
		if n < 0 {
			n = 0
		}
		if err != nil {
			return n, &PortError{code: ReadFailed, causedBy: err}
		}
		return n, nil
	}
}

func (port *unixPort) Write(p []byte) (int, error) {
	port.closeLock.RLock()
	defer port.closeLock.RUnlock()
	if atomic.LoadUint32(&port.opened) != 1 {
		return 0, &PortError{code: PortClosed}
	}

	written := 0
	for written < len(p) {
		n, err := unix.Write(port.handle, p[written:])
		if n > 0 {
			written += n
		}
		switch err {
		case nil:
		case unix.EINTR:
		case unix.EAGAIN:
			if err := port.waitWritable(); err != nil {
				return written, err
			}
		default:
			return written, &PortError{code: OsError, causedBy: err}
		}
	}
	return written, nil
}

// waitWritable blocks until the output queue has room again or the port
// is being closed.
func (port *unixPort) waitWritable() error {
	closeFD := port.closeSignal.ReadFD()
	for {
		res, err := unixutils.Select(unixutils.NewFDSet(closeFD), unixutils.NewFDSet(port.handle), unixutils.NewFDSet(port.handle), -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return &PortError{code: OsError, causedBy: err}
		}
		switch {
		case res.IsReadable(closeFD):
			return &PortError{code: PortClosed}
		case res.IsError(port.handle):
			return &PortError{code: OsError, causedBy: unix.EIO}
		case res.IsWritable(port.handle):
			return nil
		}
	}
}

func (port *unixPort) InWaiting() (int, error) {
	port.closeLock.RLock()
	defer port.closeLock.RUnlock()
	if atomic.LoadUint32(&port.opened) != 1 {
		return 0, &PortError{code: PortClosed}
	}
	n, err := unix.IoctlGetInt(port.handle, ioctlInQueue)
	if err != nil {
		return 0, &PortError{code: OsError, causedBy: err}
	}
	return n, nil
}

func (port *unixPort) ResetInputBuffer() error {
	port.closeLock.RLock()
	defer port.closeLock.RUnlock()
	if atomic.LoadUint32(&port.opened) != 1 {
		return &PortError{code: PortClosed}
	}
	if err := flushInput(port.handle); err != nil {
		return &PortError{code: OsError, causedBy: err}
	}
	return nil
}

func (port *unixPort) SetMode(mode *Mode) error {
	settings, err := port.getTermSettings()
	if err != nil {
		return err
	}
	special := false
	if err := setTermSettingsBaudrate(mode.BaudRate, settings); err != nil {
		special = true
	}
	if err := setTermSettingsParity(mode.Parity, settings); err != nil {
		return err
	}
	if err := setTermSettingsDataBits(mode.DataBits, settings); err != nil {
		return err
	}
	if err := setTermSettingsStopBits(mode.StopBits, settings); err != nil {
		return err
	}
	if err := port.setTermSettings(settings); err != nil {
		return err
	}
	if special {
		return port.setSpecialBaudrate(mode.BaudRate)
	}
	return nil
}

func (port *unixPort) SetReadTimeout(timeout time.Duration) error {
	if timeout < 0 && timeout != NoTimeout {
		return &PortError{code: InvalidTimeoutValue}
	}
	port.readTimeout = timeout
	return nil
}

func nativeOpen(portName string, mode *Mode) (Port, error) {
	port, err := openPort(portName, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}

func openPort(portName string, mode *Mode) (*unixPort, error) {
	if mode == nil {
		mode = &Mode{}
	}
	h, err := unix.Open(portName, unix.O_RDWR|unix.O_NOCTTY|unix.O_NDELAY|unix.O_CLOEXEC, 0)
	if err != nil {
		switch err {
		case unix.EBUSY:
			return nil, &PortError{code: PortBusy, causedBy: err}
		case unix.EACCES:
			return nil, &PortError{code: PermissionDenied, causedBy: err}
		case unix.ENOENT:
			return nil, &PortError{code: PortNotFound, causedBy: err}
		}
		return nil, &PortError{code: OsError, causedBy: err}
	}
	port := &unixPort{
		handle:      h,
		opened:      1,
		readTimeout: NoTimeout,
	}

	// Setup serial port
	settings, err := port.getTermSettings()
	if err != nil {
		unix.Close(h)
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	setRawMode(settings)
	if err := port.setTermSettings(settings); err != nil {
		unix.Close(h)
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	if err := port.SetMode(mode); err != nil {
		unix.Close(h)
		if _, ok := err.(*PortError); ok {
			return nil, err
		}
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}

	port.acquireExclusiveAccess()

	port.closeSignal, err = unixutils.NewPipe()
	if err != nil {
		port.releaseExclusiveAccess()
		unix.Close(h)
		return nil, &PortError{code: OsError, causedBy: err}
	}
	port.cancelSignal, err = unixutils.NewPipe()
	if err != nil {
		port.closeSignal.Close()
		port.releaseExclusiveAccess()
		unix.Close(h)
		return nil, &PortError{code: OsError, causedBy: err}
	}

	return port, nil
}

func nativeGetPortsList() ([]string, error) {
	return getPortsList(devFolder)
}

// getPortsList returns the serial devices found in dir, in natural order.
func getPortsList(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PortError{code: ErrorEnumeratingPorts, causedBy: err}
	}

	filter := regexp.MustCompile(regexFilter)
	ports := make([]string, 0, len(files))
	for _, f := range files {
		// Skip folders
		if f.IsDir() {
			continue
		}

		// Keep only devices with the correct name
		if !filter.MatchString(f.Name()) {
			continue
		}

		portName := filepath.Join(dir, f.Name())

		// Check if serial port is real or is a placeholder serial port "ttySxx"
		if strings.HasPrefix(f.Name(), "ttyS") {
			port, err := openPort(portName, &Mode{})
			if err != nil {
				continue
			}
			port.Close()
		}

		// Save serial port in the resulting list
		ports = append(ports, portName)
	}

	sort.Sort(sortorder.Natural(ports))
	return ports, nil
}

// termios manipulation functions

func setTermSettingsParity(parity Parity, settings *unix.Termios) error {
	switch parity {
	case NoParity:
		settings.Cflag &^= tcflag(unix.PARENB | unix.PARODD | tcCMSPAR)
		settings.Iflag &^= tcflag(unix.INPCK)
	case OddParity:
		settings.Cflag |= tcflag(unix.PARENB | unix.PARODD)
		settings.Cflag &^= tcflag(tcCMSPAR)
		settings.Iflag |= tcflag(unix.INPCK)
	case EvenParity:
		settings.Cflag &^= tcflag(unix.PARODD | tcCMSPAR)
		settings.Cflag |= tcflag(unix.PARENB)
		settings.Iflag |= tcflag(unix.INPCK)
	case MarkParity:
		if tcCMSPAR == 0 {
			return &PortError{code: InvalidParity}
		}
		settings.Cflag |= tcflag(unix.PARENB | unix.PARODD | tcCMSPAR)
		settings.Iflag |= tcflag(unix.INPCK)
	case SpaceParity:
		if tcCMSPAR == 0 {
			return &PortError{code: InvalidParity}
		}
		settings.Cflag &^= tcflag(unix.PARODD)
		settings.Cflag |= tcflag(unix.PARENB | tcCMSPAR)
		settings.Iflag |= tcflag(unix.INPCK)
	default:
		return &PortError{code: InvalidParity}
	}
	return nil
}

var databitsMap = map[int]tcflag{
	0: unix.CS8, // Default to 8 bits
	5: unix.CS5,
	6: unix.CS6,
	7: unix.CS7,
	8: unix.CS8,
}

func setTermSettingsDataBits(bits int, settings *unix.Termios) error {
	databits, ok := databitsMap[bits]
	if !ok {
		return &PortError{code: InvalidDataBits}
	}
	settings.Cflag &^= tcflag(unix.CSIZE)
	settings.Cflag |= databits
	return nil
}

func setTermSettingsStopBits(bits StopBits, settings *unix.Termios) error {
	switch bits {
	case OneStopBit:
		settings.Cflag &^= tcflag(unix.CSTOPB)
	case OnePointFiveStopBits, TwoStopBits:
		settings.Cflag |= tcflag(unix.CSTOPB)
	default:
		return &PortError{code: InvalidStopBits}
	}
	return nil
}

func setRawMode(settings *unix.Termios) {
	// Set local mode
	settings.Cflag |= tcflag(unix.CREAD | unix.CLOCAL)
	settings.Cflag &^= tcflag(unix.CRTSCTS)

	// Set raw mode
	settings.Lflag &^= tcflag(unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK |
		unix.ECHONL | unix.ECHOCTL | unix.ECHOPRT | unix.ECHOKE | unix.ISIG | unix.IEXTEN)
	settings.Iflag &^= tcflag(unix.IXON | unix.IXOFF | unix.IXANY | unix.INPCK |
		unix.IGNPAR | unix.PARMRK | unix.ISTRIP | unix.IGNBRK | unix.BRKINT | unix.INLCR |
		unix.IGNCR | unix.ICRNL | tcIUCLC)
	settings.Oflag &^= tcflag(unix.OPOST)

	// Block reads until at least one char is available (no timeout)
	settings.Cc[unix.VMIN] = 1
	settings.Cc[unix.VTIME] = 0
}

// native syscall wrapper functions

func (port *unixPort) getTermSettings() (*unix.Termios, error) {
	return unix.IoctlGetTermios(port.handle, ioctlTcgetattr)
}

func (port *unixPort) setTermSettings(settings *unix.Termios) error {
	return unix.IoctlSetTermios(port.handle, ioctlTcsetattr, settings)
}

func (port *unixPort) acquireExclusiveAccess() error {
	return unix.IoctlSetInt(port.handle, unix.TIOCEXCL, 0)
}

func (port *unixPort) releaseExclusiveAccess() error {
	return unix.IoctlSetInt(port.handle, unix.TIOCNXCL, 0)
}
