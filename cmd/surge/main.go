package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rms-check/internal/compat"
	"rms-check/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "surge",
	Short: "Static analyzer and language server for random-map-script files",
	Long:  `surge lints, fixes, formats, packages, and serves diagnostics for random-map-script (.rms) files.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runDefault,
}

// runDefault makes "surge <file>..." with no subcommand equivalent to
// "surge check <file>...", per the CLI surface's default action.
func runDefault(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return runCheck(cmd, args)
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to a .rms-check.toml config file (default: nearest ancestor)")

	rootCmd.PersistentFlags().Bool("aoc", false, "default compatibility level: Age of Conquerors")
	rootCmd.PersistentFlags().Bool("up14", false, "default compatibility level: UserPatch 1.4")
	rootCmd.PersistentFlags().Bool("up15", false, "default compatibility level: UserPatch 1.5")
	rootCmd.PersistentFlags().Bool("wk", false, "default compatibility level: WololoKingdoms")
	rootCmd.PersistentFlags().Bool("hd", false, "default compatibility level: HD Edition")
	rootCmd.PersistentFlags().Bool("de", false, "default compatibility level: Definitive Edition")

	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a cobra run error to the CLI's exit code table. A
// *cliExitError carries the code an operation already decided; anything
// else (flag parsing, usage errors) is an invalid invocation.
func exitCodeFor(err error) int {
	var exitErr *cliExitError
	if asExitErr(err, &exitErr) {
		return exitErr.code
	}
	return 3
}

func asExitErr(err error, target **cliExitError) bool {
	for err != nil {
		if e, ok := err.(*cliExitError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// cliExitError carries a pre-decided process exit code (1 or 2, per the
// warnings-found/errors-found distinction) out of a RunE.
type cliExitError struct {
	code int
}

func (e *cliExitError) Error() string { return "" }

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &cliExitError{code: code}
}

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// explicitLevel returns the compatibility level selected by the six
// boolean --aoc/--up14/--up15/--wk/--hd/--de flags, if exactly one was
// set. ok is false when none was set, leaving the caller to fall back to
// project config / the default level.
func explicitLevel(cmd *cobra.Command) (level compat.Level, ok bool, err error) {
	flags := []struct {
		name  string
		level compat.Level
	}{
		{"aoc", compat.Conquerors},
		{"up14", compat.UserPatch14},
		{"up15", compat.UserPatch15},
		{"wk", compat.WololoKingdoms},
		{"hd", compat.HDEdition},
		{"de", compat.DefinitiveEdition},
	}
	persistent := cmd.Root().PersistentFlags()
	var found int
	var last compat.Level
	for _, f := range flags {
		set, err := persistent.GetBool(f.name)
		if err != nil {
			return 0, false, err
		}
		if set {
			found++
			last = f.level
		}
	}
	if found == 0 {
		return 0, false, nil
	}
	if found > 1 {
		return 0, false, fmt.Errorf("only one of --aoc/--up14/--up15/--wk/--hd/--de may be set")
	}
	return last, true, nil
}
