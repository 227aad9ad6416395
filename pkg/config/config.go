// Package config defines core configuration types for md2docx.
// These types are pure data structures with no dependency on the loader.
package config

import "math"

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// Defaults for the document settings.
const (
	DefaultCodeFont     = "Courier New"
	DefaultCodeFontSize = 10.0
	DefaultImageWidth   = 4.0
)

// emuPerInch converts inches to English Metric Units.
const emuPerInch = 914400

// Config is the root configuration structure for md2docx.
type Config struct {
	// CodeFont is the font family for inline code and code blocks.
	CodeFont string `mapstructure:"code_font" yaml:"code_font"`

	// CodeFontSize is the code block font size in points.
	CodeFontSize float64 `mapstructure:"code_font_size" yaml:"code_font_size"`

	// ImageWidth is the display width of embedded images in inches.
	ImageWidth float64 `mapstructure:"image_width" yaml:"image_width"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Extensions lists the file extensions treated as Markdown.
	// Empty means the go-enry Markdown extension list.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Recursive descends into subdirectories during discovery.
	Recursive bool `mapstructure:"-" yaml:"-"`

	// OutputDir redirects outputs; empty writes next to each source.
	OutputDir string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		CodeFont:     DefaultCodeFont,
		CodeFontSize: DefaultCodeFontSize,
		ImageWidth:   DefaultImageWidth,
		Flavor:       FlavorGFM,
		Jobs:         1,
	}
}

// CodeFontHalfPoints returns the code block size in half-points.
func (c *Config) CodeFontHalfPoints() int {
	return int(math.Round(c.CodeFontSize * 2))
}

// ImageWidthEMU returns the image display width in EMU.
func (c *Config) ImageWidthEMU() int64 {
	return int64(math.Round(c.ImageWidth * emuPerInch))
}
