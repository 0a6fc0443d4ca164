package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abakum/serialmon/config"
	"github.com/abakum/serialmon/monitor"
)

type rootOptions struct {
	configFile string
	baud       int
	format     string
	settle     time.Duration
	timeout    time.Duration
	encoding   string
	timestamps bool
	flush      bool
	capture    string
	verbose    bool
}

// openPort is replaced in tests.
var openPort monitor.Opener = monitor.OpenSerial

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "serialmon [port]",
		Short: "Print the lines a serial device sends",
		Long: "Open a serial port, wait for the device to settle and print every line it sends " +
			"until interrupted with Ctrl+C.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.Flags(), args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err = monitor.Session(ctx, cfg, openPort, cmd.OutOrStdout())
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML file with session settings")
	flags.IntVarP(&opts.baud, "baud", "b", config.DefaultBaudRate, "Baud rate")
	flags.StringVarP(&opts.format, "format", "f", config.DefaultFormat, "Data bits, parity and stop bits")
	flags.DurationVar(&opts.settle, "settle", config.DefaultSettle, "Delay after opening the port before reading")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultReadTimeout, "Print an unterminated line after this much silence (0 waits forever)")
	flags.StringVar(&opts.encoding, "encoding", config.DefaultEncoding, "Text encoding of the device output")
	flags.BoolVarP(&opts.timestamps, "timestamps", "t", false, "Prefix each line with the time it was received")
	flags.BoolVar(&opts.flush, "flush", false, "Discard what the device sent while settling")
	flags.StringVar(&opts.capture, "capture", "", "Also append received lines to this file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newListCmd())
	return cmd
}

// loadConfig builds the session settings: defaults, then the config file,
// then flags given explicitly on the command line, then the port argument.
func loadConfig(opts *rootOptions, flags *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}

	if flags.Changed("baud") {
		cfg.BaudRate = opts.baud
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("settle") {
		cfg.Settle = opts.settle
	}
	if flags.Changed("timeout") {
		cfg.ReadTimeout = opts.timeout
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if flags.Changed("timestamps") {
		cfg.Timestamps = opts.timestamps
	}
	if flags.Changed("flush") {
		cfg.Flush = opts.flush
	}
	if flags.Changed("capture") {
		cfg.Capture = opts.capture
	}
	if len(args) > 0 {
		cfg.Port = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
