// Package diagnose adapts the driver's per-file analysis into the
// workspace-shaped queries the LSP façade needs: analyze a whole directory
// or a fixed file list, with open-buffer overlays standing in for disk
// content, and flatten the result into line/column diagnostics ready for
// publishDiagnostics.
package diagnose

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
	"rms-check/internal/driver"
	"rms-check/internal/source"
)

// FileOverlay holds unsaved editor buffer content, keyed by canonical path,
// standing in for the on-disk content of whichever of those paths are
// analyzed.
type FileOverlay struct {
	Files map[string]string
}

// Options configures a workspace analysis run.
type Options struct {
	// ProjectRoot is the directory AnalyzeWorkspace walks for *.rms files.
	ProjectRoot string
	// BaseDir roots the FileSet's relative-path formatting.
	BaseDir string
	Level   compat.Level
	// DisabledLints suppresses matching diag.Code ids from the returned
	// Diagnostic list (the underlying Result.Bag is left intact).
	DisabledLints  map[string]bool
	MaxDiagnostics int
	Jobs           int
	// Cache, when non-nil, is consulted and populated the same way
	// driver.AnalyzeDir uses one, keyed by disk content hash — overlaid
	// files never hit the cache, since their content hasn't been saved.
	Cache *cache.Store
}

// Snapshot is one workspace analysis's complete result: the FileSet every
// span in every Result is addressed against, plus each file's Result keyed
// by canonical path.
type Snapshot struct {
	FileSet *source.FileSet
	Results map[string]*driver.Result
}

// Diagnostic is one flattened, line/column-addressed warning, ready to
// translate into an LSP publishDiagnostics payload.
type Diagnostic struct {
	FilePath                             string
	StartLine, StartCol, EndLine, EndCol int
	Severity                             diag.Severity
	Code                                 string
	Message                              string
}

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

// AnalyzeWorkspace analyzes every *.rms file under opts.ProjectRoot.
func AnalyzeWorkspace(ctx context.Context, opts *Options, overlay FileOverlay) (*Snapshot, []Diagnostic, error) {
	files, err := listRMSFiles(opts.ProjectRoot)
	if err != nil {
		return nil, nil, err
	}
	return AnalyzeFiles(ctx, opts, files, overlay)
}

// AnalyzeFiles analyzes exactly the given files, substituting overlay
// content for any path it names.
func AnalyzeFiles(ctx context.Context, opts *Options, files []string, overlay FileOverlay) (*Snapshot, []Diagnostic, error) {
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	if len(files) == 0 {
		return &Snapshot{FileSet: fileSet, Results: map[string]*driver.Result{}}, nil, nil
	}

	fileIDs := make([]source.FileID, len(files))
	for i, path := range files {
		if text, ok := overlay.Files[path]; ok {
			fileIDs[i] = fileSet.AddVirtual(path, []byte(text))
			continue
		}
		fileID, err := fileSet.Load(path)
		if err != nil {
			return nil, nil, err
		}
		fileIDs[i] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*driver.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		i := i
		overlaid := false
		if _, ok := overlay.Files[files[i]]; ok {
			overlaid = true
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = analyzeOne(fileSet, fileIDs[i], opts, overlaid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	snapshot := &Snapshot{FileSet: fileSet, Results: make(map[string]*driver.Result, len(results))}
	var diags []Diagnostic
	for _, r := range results {
		snapshot.Results[r.Path] = r
		diags = append(diags, flatten(fileSet, r, opts.DisabledLints)...)
	}
	return snapshot, diags, nil
}

func analyzeOne(fileSet *source.FileSet, fileID source.FileID, opts *Options, overlaid bool) *driver.Result {
	file := fileSet.Get(fileID)

	if opts.Cache != nil && !overlaid {
		hash := cache.HashContent(file.Content)
		if entry, ok, err := opts.Cache.Get(hash); err == nil && ok && compat.Level(entry.Level) == opts.Level {
			return &driver.Result{
				Path:   file.Path,
				FileID: fileID,
				Bag:    cache.ToBag(entry, fileID, opts.MaxDiagnostics),
				Level:  opts.Level,
			}
		}
	}

	result := driver.AnalyzeFile(fileSet, fileID, opts.Level, opts.MaxDiagnostics)

	if opts.Cache != nil && !overlaid {
		hash := cache.HashContent(file.Content)
		entry, err := cache.ToEntry(result.Bag, opts.Level, hash, diag.FixBuildContext{FileSet: fileSet})
		if err == nil {
			_ = opts.Cache.Put(entry)
		}
	}
	return result
}

func flatten(fileSet *source.FileSet, r *driver.Result, disabled map[string]bool) []Diagnostic {
	if r == nil || r.Bag == nil {
		return nil
	}
	out := make([]Diagnostic, 0, r.Bag.Len())
	for _, d := range r.Bag.Items() {
		if disabled[d.Code.ID()] {
			continue
		}
		start, end := fileSet.Resolve(d.Primary)
		out = append(out, Diagnostic{
			FilePath:  r.Path,
			StartLine: int(start.Line),
			StartCol:  int(start.Col),
			EndLine:   int(end.Line),
			EndCol:    int(end.Col),
			Severity:  d.Severity,
			Code:      d.Code.ID(),
			Message:   d.Message,
		})
	}
	return out
}
