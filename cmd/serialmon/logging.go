package main

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("serialmon")

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

// setupLogging sends all module loggers to w, at DEBUG when verbose and INFO
// otherwise.
func setupLogging(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat)
	leveled := logging.AddModuleLevel(backend)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}
