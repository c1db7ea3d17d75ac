package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rms-check/internal/rmszip"
)

var packCmd = &cobra.Command{
	Use:   "pack <folder> <out.zip>",
	Short: "Package a folder of random-map-script files into a zip archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringSlice("ext", []string{".rms", ".inc", ".pers", ".xs"}, "file extensions to include (repeatable)")
}

func runPack(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return err
	}

	n, err := rmszip.Pack(args[0], args[1], rmszip.PackOptions{Extensions: exts})
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "packed %d file(s) into %s\n", n, args[1])
	}
	return nil
}
