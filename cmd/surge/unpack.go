package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rms-check/internal/rmszip"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <in.zip> <folder>",
	Short: "Extract a zip archive of random-map-script files into a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runUnpack,
}

func runUnpack(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	n, err := rmszip.Unpack(args[0], args[1])
	if err != nil {
		return fmt.Errorf("unpack: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "unpacked %d file(s) into %s\n", n, args[1])
	}
	return nil
}
