package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"docwrap/internal/gitignore"
)

// collectFiles expands the command-line paths into the list of files to
// process. Explicitly named files are taken as-is, even when they are not
// .py files or would be ignored; directories are searched recursively for
// *.py files and, unless disabled, filtered through git's ignore rules.
//
// A path that is neither file nor directory becomes a per-path error in
// badPaths. A failing ignore filter aborts the whole collection: silently
// skipping the filter would change which files get processed.
func collectFiles(ctx context.Context, paths []string, useGitignore bool) (files []string, badPaths []Result, err error) {
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		info, statErr := os.Stat(p)
		if statErr != nil {
			badPaths = append(badPaths, Result{Path: p, Err: fmt.Errorf("not a file or directory: %s", p)})
			continue
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		matches, err := pythonFilesUnder(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		if useGitignore {
			matches, err = dropIgnored(p, matches)
			if err != nil {
				return nil, nil, err
			}
		}
		for _, m := range matches {
			addFile(filepath.Join(p, m))
		}
	}
	return files, badPaths, nil
}

// pythonFilesUnder returns .py files below root, relative to root, in
// lexical walk order.
func pythonFilesUnder(ctx context.Context, root string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".py" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		matches = append(matches, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// dropIgnored removes paths that git would ignore, using one filter
// subprocess for the whole directory.
func dropIgnored(root string, matches []string) ([]string, error) {
	flt, err := gitignore.New(root)
	if err != nil {
		return nil, err
	}
	defer flt.Close()

	kept := matches[:0]
	for _, m := range matches {
		ignored, err := flt.Ignored(m)
		if err != nil {
			return nil, err
		}
		if !ignored {
			kept = append(kept, m)
		}
	}
	return kept, nil
}
