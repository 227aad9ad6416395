package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2docx/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "Courier New", cfg.CodeFont)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, 20, cfg.CodeFontHalfPoints())
	assert.Equal(t, int64(3657600), cfg.ImageWidthEMU())
	assert.Equal(t, 1, cfg.Jobs)
}

func TestFlavor_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown-it").IsValid())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Ignore:     []string{"drafts/**"},
			Extensions: []string{".md"},
			Jobs:       4,
			OutputDir:  "out",
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".txt"
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, ".md", original.Extensions[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("cli fields are not serialized", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.OutputDir = "somewhere"

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "code_font: Courier New")
		assert.Contains(t, string(data), "flavor: gfm")
		assert.NotContains(t, string(data), "somewhere")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAMLWithHeader("# hello")
		require.NoError(t, err)
		assert.Regexp(t, `^# hello\n\n`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
code_font: Consolas
code_font_size: 9.5
image_width: 5
flavor: commonmark
ignore:
  - "drafts/**"
`))
		require.NoError(t, err)
		assert.Equal(t, "Consolas", cfg.CodeFont)
		assert.Equal(t, 19, cfg.CodeFontHalfPoints())
		assert.InDelta(t, 5.0, cfg.ImageWidth, 0.001)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
	})

	t.Run("empty input yields zero config", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("comments only yields zero config", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("# code_font: Arial\n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("code_fnt: Arial\n"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(minimal), `code_font: "Courier New"`)
	assert.Contains(t, string(minimal), "# code_font_size: 10")

	parsed, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, "Courier New", parsed.CodeFont)
	assert.Equal(t, config.FlavorGFM, parsed.Flavor)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	parsedFull, err := config.FromYAML(full)
	require.NoError(t, err)
	assert.InDelta(t, config.DefaultImageWidth, parsedFull.ImageWidth, 0.001)
}
