// Package mdast provides the Markdown representation consumed by md2docx.
// It defines:
// - FileSnapshot: one parsed source file
// - Token stream: a flat, ordered sequence of block tokens with inline children
// - FrontMatter: document metadata lifted from the file header
package mdast

// FileSnapshot is the parsed view of one Markdown file.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the Markdown body with any front matter removed.
	Content []byte

	// FrontMatter holds metadata from the file header, if present.
	FrontMatter FrontMatter

	// Tokens is the ordered token stream for the body.
	Tokens []Token

	// Warnings collects non-fatal problems found while parsing.
	Warnings []string
}

// FrontMatter is the subset of front matter keys mapped onto document properties.
type FrontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Subject     string   `yaml:"subject" toml:"subject"`
	Description string   `yaml:"description" toml:"description"`
	Author      string   `yaml:"author" toml:"author"`
	Keywords    []string `yaml:"keywords" toml:"keywords"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

// IsZero reports whether no front matter key was set.
func (f FrontMatter) IsZero() bool {
	return f.Title == "" && f.Subject == "" && f.Description == "" && f.Author == "" &&
		len(f.Keywords) == 0 && len(f.Tags) == 0
}

// AllKeywords returns keywords followed by tags, without duplicates.
func (f FrontMatter) AllKeywords() []string {
	seen := make(map[string]struct{}, len(f.Keywords)+len(f.Tags))
	var out []string
	for _, list := range [][]string{f.Keywords, f.Tags} {
		for _, kw := range list {
			if kw == "" {
				continue
			}
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
