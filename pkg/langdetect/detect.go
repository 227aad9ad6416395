// Package langdetect names the language of code blocks for conversion
// statistics. The fence info string wins when it names a known language;
// otherwise the content is classified with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// classifierCandidates limits the enry classifier to languages commonly
// found in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// ForCodeBlock returns the language of a code block. The first word of the
// fence info string is used when go-enry knows it as a language alias.
func ForCodeBlock(info string, content []byte) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		if lang, ok := enry.GetLanguageByAlias(fields[0]); ok {
			return normalize(lang)
		}
	}
	return Detect(content)
}

// Detect returns the detected language for code content.
// Returns Text if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	src := snippet{raw: content, str: string(content), trimmed: bytes.TrimSpace(content)}
	for _, detect := range patternDetectors {
		if lang := detect(src); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// snippet carries the views of the content the pattern detectors need.
type snippet struct {
	raw     []byte
	str     string
	trimmed []byte
}

// patternDetectors run in order of specificity before the classifier.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var patternDetectors = []func(snippet) string{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

func detectGo(src snippet) string {
	if bytes.HasPrefix(src.trimmed, []byte("package ")) {
		return "go"
	}
	return ""
}

func detectPython(src snippet) string {
	switch {
	case strings.Contains(src.str, "def ") && strings.Contains(src.str, "):"):
		return "python"
	case strings.Contains(src.str, "__name__"), strings.Contains(src.str, "__main__"):
		return "python"
	case strings.Contains(src.str, "import ") && !strings.Contains(src.str, "import ("):
		if strings.Contains(src.str, "from ") || bytes.HasPrefix(src.trimmed, []byte("import ")) {
			return "python"
		}
	}
	return ""
}

func detectHTML(src snippet) string {
	lower := bytes.ToLower(src.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return "html"
		}
	}
	return ""
}

func detectJSON(src snippet) string {
	if (bytes.HasPrefix(src.trimmed, []byte("{")) || bytes.HasPrefix(src.trimmed, []byte("["))) &&
		bytes.Contains(src.trimmed, []byte(`"`)) {
		return "json"
	}
	return ""
}

func detectDockerfile(src snippet) string {
	if bytes.HasPrefix(src.trimmed, []byte("FROM ")) ||
		(bytes.Contains(src.raw, []byte("\nFROM ")) && bytes.Contains(src.raw, []byte("\nRUN "))) ||
		(bytes.Contains(src.raw, []byte("WORKDIR ")) && bytes.Contains(src.raw, []byte("COPY "))) {
		return "dockerfile"
	}
	return ""
}

func detectSQL(src snippet) string {
	upper := strings.ToUpper(string(src.trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return "sql"
		}
	}
	return ""
}

func detectRust(src snippet) string {
	if strings.Contains(src.str, "fn main()") ||
		strings.Contains(src.str, "println!") ||
		strings.Contains(src.str, "let mut ") {
		return "rust"
	}
	return ""
}

func detectJavaScript(src snippet) string {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(src.str, marker) {
			return "javascript"
		}
	}
	return ""
}

// detectYAML counts key: value pairs and root list items.
func detectYAML(src snippet) string {
	keys := 0
	for _, line := range bytes.Split(src.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	if keys >= 2 {
		return "yaml"
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
