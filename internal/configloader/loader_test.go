package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/md2docx/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       tmpDir,
		IgnoreUserConfig: true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if result.Config.CodeFont != config.DefaultCodeFont {
		t.Errorf("expected code font %q, got %q", config.DefaultCodeFont, result.Config.CodeFont)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath := filepath.Join(tmpDir, ".md2docx.yml")
	writeFile(t, configPath, "code_font: Consolas\nflavor: commonmark\n")

	// Discovery walks upward from a nested directory.
	nested := filepath.Join(tmpDir, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       nested,
		IgnoreUserConfig: true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.CodeFont != "Consolas" {
		t.Errorf("expected code font Consolas, got %q", result.Config.CodeFont)
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor commonmark, got %q", result.Config.Flavor)
	}
	if result.Config.CodeFontSize != config.DefaultCodeFontSize {
		t.Errorf("unset keys should keep defaults, got code_font_size %v", result.Config.CodeFontSize)
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("expected LoadedFrom [%s], got %v", configPath, result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, ".md2docx.yml"), "code_font: Consolas\nimage_width: 3\n")
	explicit := filepath.Join(tmpDir, "custom", "settings.yaml")
	writeFile(t, explicit, "code_font: Menlo\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       tmpDir,
		ExplicitPath:     explicit,
		IgnoreUserConfig: true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.CodeFont != "Menlo" {
		t.Errorf("explicit config should win, got %q", result.Config.CodeFont)
	}
	if result.Config.ImageWidth != 3 {
		t.Errorf("project value should survive, got image_width %v", result.Config.ImageWidth)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected two loaded files, got %v", result.LoadedFrom)
	}
	if result.Paths.Explicit != explicit {
		t.Errorf("expected explicit path %q, got %q", explicit, result.Paths.Explicit)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, ".md2docx.yml"), "code_font: Consolas\nignore:\n  - drafts/**\n")

	cli := &config.Config{
		CodeFont:  "Fira Code",
		Jobs:      4,
		Recursive: true,
		OutputDir: "out",
	}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       tmpDir,
		IgnoreUserConfig: true,
		CLIConfig:        cli,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.CodeFont != "Fira Code" {
		t.Errorf("expected CLI code font, got %q", cfg.CodeFont)
	}
	if cfg.Jobs != 4 || !cfg.Recursive || cfg.OutputDir != "out" {
		t.Errorf("CLI-only options not applied: jobs=%d recursive=%v output=%q", cfg.Jobs, cfg.Recursive, cfg.OutputDir)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "drafts/**" {
		t.Errorf("nil CLI ignore should keep project ignore, got %v", cfg.Ignore)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad flavor", content: "flavor: markdown-it\n", want: "invalid flavor"},
		{name: "negative size", content: "code_font_size: -1\n", want: "code_font_size"},
		{name: "bad glob", content: "ignore:\n  - \"[unclosed\"\n", want: "invalid glob pattern"},
		{name: "unknown key", content: "code_fnt: Arial\n", want: "code_fnt"},
		{name: "bad yaml", content: "code_font: [\n", want: "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "config.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), LoadOptions{
				WorkingDir:          tmpDir,
				ExplicitPath:        path,
				IgnoreUserConfig:    true,
				IgnoreProjectConfig: true,
			})
			if err == nil {
				t.Fatal("expected error for invalid config")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q should name the file", err)
			}
		})
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:       tmpDir,
		ExplicitPath:     filepath.Join(tmpDir, "nope.yaml"),
		IgnoreUserConfig: true,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:          tmpDir,
		IgnoreUserConfig:    true,
		IgnoreProjectConfig: true,
		CLIConfig:           &config.Config{ImageWidth: 9},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "image_width") {
		t.Errorf("expected one image_width warning, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, LoadOptions{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".md2docx.yml"), "code_font: Menlo\n")

	repo := filepath.Join(tmpDir, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("search should stop at the VCS root, found %q", found)
	}
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "md2docx.yaml"), "")
	writeFile(t, filepath.Join(tmpDir, ".md2docx.yaml"), "")

	found, err := FindProjectConfig(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if filepath.Base(found) != ".md2docx.yaml" {
		t.Errorf("expected .md2docx.yaml, got %q", found)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"a"}

	merged, err := MergeAll(base,
		&config.Config{CodeFontSize: 12, Recursive: true},
		&config.Config{Ignore: []string{}, Extensions: []string{".md"}},
	)
	if err != nil {
		t.Fatalf("MergeAll() error = %v", err)
	}

	if merged.CodeFontSize != 12 {
		t.Errorf("expected code_font_size 12, got %v", merged.CodeFontSize)
	}
	if merged.CodeFont != config.DefaultCodeFont {
		t.Errorf("zero override should keep base code font, got %q", merged.CodeFont)
	}
	if merged.Ignore == nil || len(merged.Ignore) != 0 {
		t.Errorf("empty non-nil slice should replace base, got %v", merged.Ignore)
	}
	if len(base.Ignore) != 1 {
		t.Errorf("merge must not mutate base, got %v", base.Ignore)
	}

	if !merged.Recursive {
		t.Error("recursive override was dropped")
	}
	if len(merged.Extensions) != 1 || merged.Extensions[0] != ".md" {
		t.Errorf("extensions = %v, want [.md]", merged.Extensions)
	}

	if none, err := MergeAll(); none != nil || err != nil {
		t.Errorf("MergeAll() = %v, %v; want nil, nil", none, err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.Config
		errors   int
		warnings int
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{name: "zero", cfg: &config.Config{}},
		{name: "blank font", cfg: &config.Config{CodeFont: "  "}, errors: 1},
		{name: "huge font", cfg: &config.Config{CodeFontSize: 5000}, errors: 1},
		{name: "negative width", cfg: &config.Config{ImageWidth: -2}, errors: 1},
		{name: "wide image", cfg: &config.Config{ImageWidth: 8}, warnings: 1},
		{name: "negative jobs", cfg: &config.Config{Jobs: -1}, errors: 1},
		{name: "bad extension", cfg: &config.Config{Extensions: []string{"md", ".markdown"}}, errors: 1},
		{name: "globs", cfg: &config.Config{Ignore: []string{"**/drafts/*", "{a,b}.md", "[x"}}, errors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if len(result.Errors) != tt.errors {
				t.Errorf("expected %d errors, got %v", tt.errors, result.AllMessages())
			}
			if len(result.Warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, result.AllMessages())
			}
			if result.Valid() != (tt.errors == 0) {
				t.Errorf("Valid() = %v with %d errors", result.Valid(), tt.errors)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "flavor", Message: "bad", FilePath: "a.yml", Line: 3}
	if got := err.Error(); got != "a.yml:3: flavor: bad" {
		t.Errorf("Error() = %q", got)
	}

	bare := &ValidationError{Message: "bad"}
	if got := bare.Error(); got != "bad" {
		t.Errorf("Error() = %q", got)
	}
}
