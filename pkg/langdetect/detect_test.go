package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/md2docx/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"shebang wins over patterns", "#!/bin/bash\ndef foo():\n    pass", "bash"},
		{"go code", "package main\n\nfunc main() {}", "go"},
		{"python code", "def foo():\n    pass", "python"},
		{"javascript code", "const x = () => 42;\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value"}`, "json"},
		{"yaml content", "key: value\nother: 123", "yaml"},
		{"rust code", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"sql query", "select * from users;", "sql"},
		{"html content", "<!DOCTYPE html>\n<html></html>", "html"},
		{"dockerfile", "FROM golang:1.25\nRUN go build", "dockerfile"},
		{"plain text fallback", "just some words", langdetect.Text},
		{"whitespace only", "  \n\t", langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestForCodeBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    string
		content string
		want    string
	}{
		{"info alias", "go", "x := 1", "go"},
		{"info with attributes", "python title=demo", "", "python"},
		{"shell alias", "sh", "", "bash"},
		{"unknown info falls back", "not-a-language", "package main", "go"},
		{"empty info detects", "", "SELECT 1", "sql"},
		{"nothing known", "", "", langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.ForCodeBlock(tt.info, []byte(tt.content)))
		})
	}
}
