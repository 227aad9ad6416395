package goldmark

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/yaklabco/md2docx/pkg/mdast"
)

// splitFrontMatter separates a leading YAML or TOML header from the body.
// Content without a header is returned unchanged. A malformed header is
// reported as an error together with the unchanged content, so callers can
// still convert the file.
func splitFrontMatter(content []byte) (mdast.FrontMatter, []byte, error) {
	var meta mdast.FrontMatter
	if !hasFrontMatterDelimiter(content) {
		return meta, content, nil
	}

	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return mdast.FrontMatter{}, content, fmt.Errorf("front matter: %w", err)
	}

	return meta, body, nil
}

// hasFrontMatterDelimiter reports whether content opens with "---" or "+++" on its own line.
func hasFrontMatterDelimiter(content []byte) bool {
	for _, delim := range [][]byte{[]byte("---"), []byte("+++")} {
		if !bytes.HasPrefix(content, delim) {
			continue
		}
		rest := bytes.TrimLeft(content[len(delim):], " \t")
		if len(rest) == 0 || rest[0] == '\n' || rest[0] == '\r' {
			return true
		}
	}
	return false
}
