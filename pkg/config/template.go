package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a commented minimal template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, `# Markdown flavor: gfm or commonmark
flavor: %s

# Font family for inline code and code blocks
code_font: %s

# Code block font size in points
# code_font_size: %s

# Embedded image width in inches
# image_width: %s

# File patterns to skip (glob patterns)
# ignore:
#   - "drafts/**"
#   - "CHANGELOG.md"

# File extensions treated as Markdown (default: every Markdown extension)
# extensions:
#   - .md
#   - .markdown
`,
		FlavorGFM,
		yamlScalar(DefaultCodeFont),
		trimFloat(DefaultCodeFontSize),
		trimFloat(DefaultImageWidth),
	)

	return buf.Bytes()
}

// yamlScalar quotes s when it contains spaces.
func yamlScalar(s string) string {
	if strings.ContainsAny(s, " :#") {
		return `"` + s + `"`
	}
	return s
}

func trimFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# md2docx configuration
# See: https://github.com/yaklabco/md2docx`
}
