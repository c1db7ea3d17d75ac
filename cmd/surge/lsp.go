package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rms-check/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "server",
	Aliases:      []string{"lsp"},
	Short:        "Run the random-map-script language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	level, cfg, err := resolveConfig(cmd, wd)
	if err != nil {
		return err
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Level:         level,
		DisabledLints: cfg.DisabledLints,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
