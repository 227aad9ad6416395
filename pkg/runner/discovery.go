package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern indicates an exclude glob that does not compile.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// Discover finds Markdown files matching opts.
// It returns a deterministically sorted list of absolute file paths.
//
// File arguments are taken as given when their extension matches. Directory
// arguments contribute their direct children, or their whole tree when
// opts.Recursive is set. Hidden files and directories are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    exclude,
		recursive:  opts.Recursive,
		follow:     opts.FollowSymlinks,
	}

	// Use a map for deduplication.
	seen := make(map[string]struct{})
	var files []string
	add := func(file string) {
		if _, ok := seen[file]; !ok {
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if w.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := w.walk(absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	exclude    *matcher
	recursive  bool
	follow     bool
}

// walk returns the matching Markdown files under root.
func (w *walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if !w.recursive || isHidden(entry.Name()) || w.exclude.match(w.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(entry.Name()) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !w.follow || !w.recursive || w.exclude.match(w.rel(path), true) {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				subFiles, err := w.walk(realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if w.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// rel returns the slash-separated path of p relative to the working directory.
func (w *walker) rel(p string) string {
	relPath, err := filepath.Rel(w.workDir, p)
	if err != nil {
		relPath = p
	}
	return filepath.ToSlash(relPath)
}

// matchesFile checks a file against the extension list and exclude patterns.
func (w *walker) matchesFile(p string) bool {
	return hasMatchingExtension(p, w.extensions) && !w.exclude.match(w.rel(p), false)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(p string, extensions []string) bool {
	ext := filepath.Ext(p)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// matcher tests slash-separated relative paths against compiled globs.
// A pattern without a slash also matches the base name at any depth, and a
// leading "**/" also matches at the top level.
type matcher struct {
	full []glob.Glob
	base []glob.Glob
}

func compileMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, raw := range patterns {
		pattern := filepath.ToSlash(strings.TrimSpace(raw))
		if pattern == "" {
			continue
		}

		variants := []string{pattern}
		if tail, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, tail)
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, raw, err)
			}
			m.full = append(m.full, g)
			if !strings.Contains(v, "/") {
				m.base = append(m.base, g)
			}
		}
	}
	return m, nil
}

// match reports whether rel is excluded. Directories also match patterns
// that select their contents, such as "vendor/**".
func (m *matcher) match(rel string, isDir bool) bool {
	for _, g := range m.full {
		if g.Match(rel) || (isDir && g.Match(rel+"/")) {
			return true
		}
	}
	name := path.Base(rel)
	for _, g := range m.base {
		if g.Match(name) {
			return true
		}
	}
	return false
}
