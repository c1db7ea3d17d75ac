package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rms-check/internal/cache"
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/diagfmt"
	"rms-check/internal/driver"
	"rms-check/internal/project"
	"rms-check/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rms|directory>...",
	Short: "Lint random-map-script files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory checking (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "preview fix suggestions' resulting text")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().StringSlice("disable", nil, "lint id to suppress (repeatable)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk diagnostics cache")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory checks (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	disabled, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiModeFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiModeFlag)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	disabledLints := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		id = strings.TrimSpace(id)
		if id != "" {
			disabledLints[id] = true
		}
	}

	switch format {
	case "pretty", "json", "sarif":
	default:
		return fmt.Errorf("check: unsupported format %q", format)
	}

	var store *cache.Store
	if !noCache {
		store, _ = cache.Open("rms-check")
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := suggest || preview

	highest := diag.SevHint
	sawAny := false

	printOne := func(fs *source.FileSet, bag *diag.Bag, label string, multi bool) error {
		if bag.Len() == 0 {
			return nil
		}
		sawAny = true
		for _, d := range bag.Items() {
			if d.Severity > highest {
				highest = d.Severity
			}
		}
		switch format {
		case "pretty":
			if multi {
				fmt.Fprintf(os.Stdout, "== %s ==\n", label)
			}
			diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
				Color: useColor, Context: 2, PathMode: pathMode,
				ShowNotes: withNotes, ShowFixes: showFixes, ShowPreview: preview,
			})
		case "json":
			return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
				IncludePositions: true, PathMode: pathMode,
				IncludeNotes: withNotes, IncludeFixes: showFixes, IncludePreviews: preview,
			})
		case "sarif":
			return diagfmt.Sarif(os.Stdout, bag, fs, diagfmt.SarifRunMeta{ToolName: "surge", ToolVersion: "0.1.0"})
		}
		return nil
	}

	for _, target := range args {
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}

		level, cfg, err := resolveConfig(cmd, target)
		if err != nil {
			return err
		}
		effectiveDisabled := mergeDisabled(cfg.DisabledLints, disabledLints)

		if !info.IsDir() {
			if err := checkOneFile(target, level, maxDiagnostics, effectiveDisabled, printOne); err != nil {
				return err
			}
			continue
		}

		dirOpts := driver.AnalyzeDirOptions{
			Level: level, MaxDiagnostics: maxDiagnostics, Jobs: jobs, Cache: store,
		}

		var fileSet *source.FileSet
		var results []*driver.Result
		if shouldUseTUI(mode) {
			files, listErr := driver.ListRMSFiles(target)
			if listErr != nil {
				return fmt.Errorf("check: %w", listErr)
			}
			fileSet, results, err = runAnalyzeDirWithUI(cmd.Context(), target, files, target, dirOpts)
		} else {
			fileSet, results, err = driver.AnalyzeDir(cmd.Context(), target, dirOpts)
		}
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		for _, r := range results {
			filtered := filterBagForPrint(r.Bag, effectiveDisabled)
			if err := printOne(fileSet, filtered, r.Path, true); err != nil {
				return fmt.Errorf("check: %w", err)
			}
		}
	}

	if !sawAny {
		return nil
	}
	if highest == diag.SevError {
		return exitWith(2)
	}
	return exitWith(1)
}

func checkOneFile(path string, level compat.Level, maxDiagnostics int, disabled map[string]bool, printOne func(*source.FileSet, *diag.Bag, string, bool) error) error {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	result := driver.AnalyzeFile(fileSet, fileID, level, maxDiagnostics)
	filtered := filterBagForPrint(result.Bag, disabled)
	return printOne(fileSet, filtered, result.Path, false)
}

func filterBagForPrint(bag *diag.Bag, disabled map[string]bool) *diag.Bag {
	if bag == nil || len(disabled) == 0 {
		return bag
	}
	capacity := bag.Len()
	if capacity <= 0 {
		capacity = 1
	}
	out := diag.NewBag(capacity)
	for _, d := range bag.Items() {
		if disabled[d.Code.ID()] {
			continue
		}
		out.Add(d)
	}
	return out
}

// resolveConfig loads an explicit --config path, or else the nearest
// .rms-check.toml for target, then overrides its Level with an explicit
// --aoc/--up14/... flag if one was given.
func resolveConfig(cmd *cobra.Command, target string) (compat.Level, project.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return 0, project.Config{}, err
	}

	var cfg project.Config
	if configPath != "" {
		cfg, err = project.Load(configPath)
	} else {
		cfg, err = project.LoadForDir(startDirFor(target))
	}
	if err != nil {
		return 0, project.Config{}, fmt.Errorf("check: %w", err)
	}
	level := cfg.Level
	if explicit, ok, err := explicitLevel(cmd); err != nil {
		return 0, project.Config{}, err
	} else if ok {
		level = explicit
	}
	return level, cfg, nil
}

func mergeDisabled(base, extra map[string]bool) map[string]bool {
	if len(base) == 0 {
		return extra
	}
	out := make(map[string]bool, len(base)+len(extra))
	for id := range base {
		out[id] = true
	}
	for id := range extra {
		out[id] = true
	}
	return out
}

func startDirFor(target string) string {
	info, err := os.Stat(target)
	if err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}
