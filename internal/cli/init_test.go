package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withTerminal makes init believe stdin is a terminal for the test duration.
func withTerminal(t *testing.T) {
	t.Helper()

	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return true }
	t.Cleanup(func() { stdinIsTerminal = orig })
}

func TestRunInit_PromptBeforeOverwrite(t *testing.T) {
	withTerminal(t)

	tests := []struct {
		name      string
		answer    string
		overwrite bool
	}{
		{name: "yes", answer: "y\n", overwrite: true},
		{name: "full word", answer: "Yes\n", overwrite: true},
		{name: "no", answer: "n\n", overwrite: false},
		{name: "empty answer", answer: "\n", overwrite: false},
		{name: "eof", answer: "", overwrite: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), defaultConfigFile)
			if err := os.WriteFile(path, []byte("keep\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			var prompt bytes.Buffer
			err := runInit(context.Background(), strings.NewReader(tt.answer), &prompt, path, &initFlags{})
			if err != nil {
				t.Fatalf("runInit() error = %v", err)
			}

			if !strings.Contains(prompt.String(), "Overwrite? [y/N]") {
				t.Errorf("prompt = %q, want overwrite question", prompt.String())
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(data) != "keep\n"; got != tt.overwrite {
				t.Errorf("overwritten = %v, want %v", got, tt.overwrite)
			}
		})
	}
}

func TestRunInit_ForceSkipsPrompt(t *testing.T) {
	withTerminal(t)

	path := filepath.Join(t.TempDir(), defaultConfigFile)
	if err := os.WriteFile(path, []byte("keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var prompt bytes.Buffer
	if err := runInit(context.Background(), strings.NewReader(""), &prompt, path, &initFlags{force: true}); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}
	if prompt.Len() != 0 {
		t.Errorf("prompt written with --force: %q", prompt.String())
	}
}

func TestRunInit_NewFileNoPrompt(t *testing.T) {
	withTerminal(t)

	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yml")

	var prompt bytes.Buffer
	if err := runInit(context.Background(), strings.NewReader(""), &prompt, path, &initFlags{full: true}); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}
	if prompt.Len() != 0 {
		t.Errorf("unexpected prompt %q", prompt.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "code_font") {
		t.Errorf("generated config lacks code_font:\n%s", data)
	}
}
