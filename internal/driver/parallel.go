package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rms-check/internal/cache"
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/source"
)

// listRMSFiles returns every *.rms file under dir, sorted for a
// deterministic directory-wide run order.
func listRMSFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rms") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ListRMSFiles returns every *.rms file under dir, sorted, in the same
// order AnalyzeDir processes them. Callers driving a progress UI use this
// to know the file set up front.
func ListRMSFiles(dir string) ([]string, error) {
	return listRMSFiles(dir)
}

// AnalyzeDirOptions configures a directory-wide analysis run.
type AnalyzeDirOptions struct {
	Level          compat.Level
	MaxDiagnostics int
	Jobs           int          // <=0 means GOMAXPROCS(0)
	Cache          *cache.Store // nil disables the on-disk cache
	Progress       ProgressSink // nil disables progress reporting
}

// AnalyzeDir lexes, parses, and lints every *.rms file under dir, in
// parallel, each file's parse+lint running as the single synchronous unit
// spec.md §5 describes — concurrency only ever spans across files.
func AnalyzeDir(ctx context.Context, dir string, opts AnalyzeDirOptions) (*source.FileSet, []*Result, error) {
	files, err := listRMSFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make([]source.FileID, len(files))
	for i, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			return fileSet, nil, err
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(files))

	if opts.Progress != nil {
		for _, path := range files {
			opts.Progress.Send(Event{File: path, Status: StatusQueued})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = analyzeWithCache(fileSet, fileIDs[i], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func analyzeWithCache(fileSet *source.FileSet, fileID source.FileID, opts AnalyzeDirOptions) *Result {
	file := fileSet.Get(fileID)

	if opts.Progress != nil {
		opts.Progress.Send(Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	}

	if opts.Cache != nil {
		hash := cache.HashContent(file.Content)
		if entry, ok, err := opts.Cache.Get(hash); err == nil && ok && compat.Level(entry.Level) == opts.Level {
			if opts.Progress != nil {
				opts.Progress.Send(Event{File: file.Path, Stage: StageLint, Status: StatusDone})
			}
			return &Result{
				Path:   file.Path,
				FileID: fileID,
				Bag:    cache.ToBag(entry, fileID, opts.MaxDiagnostics),
				Level:  opts.Level,
			}
		}
	}

	if opts.Progress != nil {
		opts.Progress.Send(Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	}
	result := AnalyzeFile(fileSet, fileID, opts.Level, opts.MaxDiagnostics)

	if opts.Cache != nil {
		hash := cache.HashContent(file.Content)
		entry, err := cache.ToEntry(result.Bag, opts.Level, hash, diag.FixBuildContext{FileSet: fileSet})
		if err == nil {
			_ = opts.Cache.Put(entry)
		}
	}

	if opts.Progress != nil {
		status := StatusDone
		if result.Bag != nil && result.Bag.HasErrors() {
			status = StatusError
		}
		opts.Progress.Send(Event{File: file.Path, Stage: StageLint, Status: status})
	}

	return result
}
