// Package driver turns command-line paths into per-file rewrap results. It
// owns everything around the engine: file collection, the clean-file
// cache, bounded parallelism, and atomic write-back.
package driver

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"docwrap/internal/cache"
	"docwrap/internal/pyspan"
	"docwrap/internal/rewrap"
)

// Options configures a run.
type Options struct {
	MaxLength         int
	ForceTripleQuotes bool
	WrapComments      bool
	WrapDocstrings    bool
	UseGitignore      bool
	Check             bool
	Jobs              int
	NoCache           bool
	CacheDir          string // override for tests; empty means the standard location
	Progress          Sink   // optional
}

// Result captures the outcome for a single file (or a bad input path).
type Result struct {
	Path      string
	Modified  bool
	FromCache bool
	Err       error
}

// Summary aggregates a whole run.
type Summary struct {
	Results   []Result
	Processed int
	Modified  int
	Errors    int
}

// pySpans adapts the Python span finder to the engine's provider interface.
type pySpans struct{}

func (pySpans) DocstringSpans(lines []string) ([]rewrap.Span, error) {
	found := pyspan.Find(lines)
	spans := make([]rewrap.Span, len(found))
	for i, sp := range found {
		spans[i] = rewrap.Span{Start: sp.Start, End: sp.End}
	}
	return spans, nil
}

// Run processes all files reachable from paths. Per-file errors are
// recorded in the summary and do not stop other files; environment errors
// (a broken ignore filter, cancellation) abort the run.
func Run(ctx context.Context, paths []string, opts Options) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, badPaths, err := collectFiles(ctx, paths, opts.UseGitignore)
	if err != nil {
		return nil, err
	}

	c := openCache(opts)
	fp := cache.Fingerprint{
		MaxLength:         opts.MaxLength,
		ForceTripleQuotes: opts.ForceTripleQuotes,
		WrapComments:      opts.WrapComments,
		WrapDocstrings:    opts.WrapDocstrings,
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		opts.emit(path, StatusQueued)
	}

	// Each worker writes only its own index; no mutex needed.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = processFile(path, c, fp, opts)
				return nil
			}
		}(i, path))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Results:   append(results, badPaths...),
		Processed: len(files),
	}
	for _, res := range summary.Results {
		if res.Err != nil {
			summary.Errors++
		} else if res.Modified {
			summary.Modified++
		}
	}
	return summary, nil
}

// openCache returns the clean-file cache or nil; cache trouble must never
// fail a run.
func openCache(opts Options) *cache.Cache {
	if opts.NoCache {
		return nil
	}
	dir := opts.CacheDir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir("docwrap")
		if err != nil {
			return nil
		}
	}
	c, err := cache.Open(dir)
	if err != nil {
		return nil
	}
	return c
}

func processFile(path string, c *cache.Cache, fp cache.Fingerprint, opts Options) Result {
	opts.emit(path, StatusRewrapping)
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		opts.emit(path, StatusError)
		return res
	}

	if c.Clean(data, fp) {
		res.FromCache = true
		opts.emit(path, StatusCached)
		return res
	}

	processed, modified, err := rewrap.ProcessContent(string(data), pySpans{}, rewrap.Options{
		MaxLength:         opts.MaxLength,
		ForceTripleQuotes: opts.ForceTripleQuotes,
		WrapComments:      opts.WrapComments,
		WrapDocstrings:    opts.WrapDocstrings,
	})
	if err != nil {
		res.Err = err
		opts.emit(path, StatusError)
		return res
	}

	if !modified || processed == string(data) {
		_ = c.MarkClean(data, fp)
		opts.emit(path, StatusClean)
		return res
	}

	res.Modified = true
	if opts.Check {
		opts.emit(path, StatusModified)
		return res
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, []byte(processed), mode); err != nil {
		res.Err = err
		res.Modified = false
		opts.emit(path, StatusError)
		return res
	}
	_ = c.MarkClean([]byte(processed), fp)
	opts.emit(path, StatusModified)
	return res
}
