package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/md2docx/pkg/runner"
)

// writeTree creates the given slash-separated files under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# "+f+"\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relAll returns the discovered files relative to dir, slash-separated.
func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel %s: %v", f, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return relAll(t, opts.WorkingDir, files)
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md")
	mdFile := filepath.Join(dir, "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{mdFile},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 || files[0] != mdFile {
		t.Fatalf("expected [%s], got %v", mdFile, files)
	}
}

func TestDiscover_DirectoryIsNotRecursiveByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md", "b.markdown", "docs/guide.md", "src/main.go", "notes.txt")

	got := discover(t, runner.Options{WorkingDir: dir})
	want := []string{"b.markdown", "readme.md"}
	if !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md", "docs/guide.md", "docs/api.markdown", "docs/deep/x.md", "src/main.go")

	got := discover(t, runner.Options{Paths: []string{"."}, WorkingDir: dir, Recursive: true})
	want := []string{"docs/api.markdown", "docs/deep/x.md", "docs/guide.md", "readme.md"}
	if !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_DirectoryArgument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "top.md", "docs/a.md", "docs/sub/b.md")

	got := discover(t, runner.Options{Paths: []string{"docs"}, WorkingDir: dir})
	if want := []string{"docs/a.md"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "file.md", "file.markdown", "file.txt", "file.MDX")

	got := discover(t, runner.Options{WorkingDir: dir, Extensions: []string{".mdx", ".txt"}})
	want := []string{"file.MDX", "file.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "base name anywhere",
			patterns: []string{"CHANGELOG.md"},
			want:     []string{"docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "directory contents",
			patterns: []string{"vendor/**"},
			want:     []string{"docs/CHANGELOG.md", "docs/guide.md", "readme.md"},
		},
		{
			name:     "directory by name",
			patterns: []string{"vendor"},
			want:     []string{"docs/CHANGELOG.md", "docs/guide.md", "readme.md"},
		},
		{
			name:     "double star prefix matches top level",
			patterns: []string{"**/readme.md"},
			want:     []string{"docs/CHANGELOG.md", "docs/guide.md"},
		},
		{
			name:     "single star stays within a segment",
			patterns: []string{"docs/*.md"},
			want:     []string{"readme.md", "vendor/lib/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, "readme.md", "docs/guide.md", "docs/CHANGELOG.md", "vendor/lib/readme.md")

			got := discover(t, runner.Options{WorkingDir: dir, Recursive: true, ExcludeGlobs: tt.patterns})
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	if !errors.Is(err, runner.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "visible.md", ".hidden.md", ".github/workflows.md", "docs/.draft.md")

	got := discover(t, runner.Options{WorkingDir: dir, Recursive: true})
	if want := []string{"visible.md"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}

	// An explicit hidden directory argument is still walked.
	got = discover(t, runner.Options{Paths: []string{".github"}, WorkingDir: dir})
	if want := []string{".github/workflows.md"}; !slices.Equal(got, want) {
		t.Errorf("Discover(.github) = %v, want %v", got, want)
	}
}

func TestDiscover_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "zeta.md", "alpha.md", "mid/beta.md", "Gamma.md")

	opts := runner.Options{Paths: []string{"mid", "."}, WorkingDir: dir, Recursive: true}
	first := discover(t, opts)
	for range 5 {
		if again := discover(t, opts); !slices.Equal(first, again) {
			t.Fatalf("ordering changed: %v vs %v", first, again)
		}
	}
	if !slices.IsSorted(first) {
		t.Errorf("expected sorted output, got %v", first)
	}
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	got := discover(t, runner.Options{Paths: []string{".", "a.md", "./a.md"}, WorkingDir: dir})
	if want := []string{"a.md"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_ExplicitFileWrongExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "notes.txt")

	if got := discover(t, runner.Options{Paths: []string{"notes.txt"}, WorkingDir: dir}); len(got) != 0 {
		t.Errorf("expected no files, got %v", got)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: dir,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real.md")

	if err := os.Symlink(filepath.Join(dir, "real.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discover(t, runner.Options{WorkingDir: dir})
	if want := []string{"link.md", "real.md"}; !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real/doc.md")

	externalDir := t.TempDir()
	writeTree(t, externalDir, "external.md")

	if err := os.Symlink(externalDir, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	ctx := context.Background()
	opts := runner.Options{WorkingDir: dir, Recursive: true}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(discovered) != 1 || !strings.HasSuffix(discovered[0], "doc.md") {
		t.Errorf("expected only real/doc.md without FollowSymlinks, got %v", discovered)
	}

	opts.FollowSymlinks = true
	discovered, err = runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	foundReal, foundExternal := false, false
	for _, f := range discovered {
		foundReal = foundReal || strings.HasSuffix(f, "doc.md")
		foundExternal = foundExternal || strings.HasSuffix(f, "external.md")
	}
	if len(discovered) != 2 || !foundReal || !foundExternal {
		t.Errorf("expected doc.md and external.md with FollowSymlinks, got %v", discovered)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()

	for _, want := range []string{".md", ".markdown"} {
		if !slices.Contains(exts, want) {
			t.Errorf("DefaultExtensions() = %v, missing %s", exts, want)
		}
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || ext != strings.ToLower(ext) {
			t.Errorf("extension %q is not a lowercase dotted suffix", ext)
		}
	}
}
