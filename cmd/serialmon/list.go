package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abakum/serialmon/enumerator"
)

// listPorts is replaced in tests.
var listPorts = enumerator.GetDetailedPortsList

func newListCmd() *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available serial ports",
		Long: "List the available serial ports. With --details the USB identity of each " +
			"adapter is shown too:\n\n" +
			"  Port: /dev/ttyUSB0\n" +
			"     USB ID     1A86:7523\n" +
			"     USB serial 5&1A2B3C\n" +
			"     Product    QinHeng Electronics USB Serial",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := listPorts()
			if err != nil {
				return err
			}
			log.Debugf("found %d serial ports", len(ports))
			return printPorts(cmd.OutOrStdout(), ports, details)
		},
	}
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show USB vendor, product and serial number")
	return cmd
}

func printPorts(w io.Writer, ports []*enumerator.PortDetails, details bool) error {
	if len(ports) == 0 {
		_, err := fmt.Fprintln(w, "No serial ports found!")
		return err
	}
	for _, port := range ports {
		if !details {
			if _, err := fmt.Fprintln(w, port.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "Port: %s\n", port.Name); err != nil {
			return err
		}
		if !port.IsUSB {
			continue
		}
		fmt.Fprintf(w, "   USB ID     %s:%s\n", port.VID, port.PID)
		if port.SerialNumber != "" {
			fmt.Fprintf(w, "   USB serial %s\n", port.SerialNumber)
		}
		if product := joinNonEmpty(port.Manufacturer, port.Product); product != "" {
			fmt.Fprintf(w, "   Product    %s\n", product)
		}
	}
	return nil
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
