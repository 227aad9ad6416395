package convert_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/md2docx/pkg/convert"
	goldmarkparser "github.com/yaklabco/md2docx/pkg/parser/goldmark"
)

// benchDocument repeats a section that touches every mapped construct.
func benchDocument(sections int) []byte {
	const section = "## Section\n\nSome **bold**, *italic* and `code` text\nwrapped softly.\n\n" +
		"- one\n- two\n  1. nested\n\n" +
		"| A | B |\n|---|--:|\n| 1 | 2 |\n| 3 | 4 |\n\n" +
		"```go\nfunc main() {}\n```\n\n"

	var buf strings.Builder
	buf.WriteString("# Benchmark\n\n")
	for range sections {
		buf.WriteString(section)
	}
	return []byte(buf.String())
}

func BenchmarkConvertContent(b *testing.B) {
	content := benchDocument(50)
	converter := convert.New(goldmarkparser.New(goldmarkparser.FlavorGFM), convert.DefaultOptions())
	path := filepath.Join(b.TempDir(), "doc.md")

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		if _, err := converter.ConvertContent(context.Background(), path, content); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvertAndSerialize(b *testing.B) {
	content := benchDocument(50)
	converter := convert.New(goldmarkparser.New(goldmarkparser.FlavorGFM), convert.DefaultOptions())
	path := filepath.Join(b.TempDir(), "doc.md")

	var buf bytes.Buffer
	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		conv, err := converter.ConvertContent(context.Background(), path, content)
		if err != nil {
			b.Fatal(err)
		}
		buf.Reset()
		if _, err := conv.Document.WriteTo(&buf); err != nil {
			b.Fatal(err)
		}
	}
}
