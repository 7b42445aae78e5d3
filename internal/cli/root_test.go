package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"show", "validate", "render", "graph", "check", "serve", "cache", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRenderCommand_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "distmeta.toml")
	manifest := `name = "pyneonat"
summary = "Neonatal brain image processing tools."
url = "https://github.com/neurospin/pyneonat"
license = "CeCILL-B"
classifiers = ["Programming Language :: Python"]
requires = ["numpy>=1.11.0"]

[version]
major = 0
minor = 0
micro = 1
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "PKG-INFO")

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", path, "--format", "pkg-info", "--output", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Name: pyneonat")) {
		t.Errorf("PKG-INFO missing name header:\n%s", data)
	}
	if !bytes.Contains(data, []byte("Version: 0.0.1")) {
		t.Errorf("PKG-INFO missing version header:\n%s", data)
	}
}

func TestValidateCommand_ReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "distmeta.toml")
	manifest := `name = "pyneonat"
requires = [">=broken"]

[version]
major = -1
minor = 0
micro = 0
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"validate", path})

	if err := root.Execute(); err == nil {
		t.Error("validate succeeded on an invalid manifest")
	}
}
