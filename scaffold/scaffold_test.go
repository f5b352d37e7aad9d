package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-folio": "My Folio",
		"folio":    "Folio",
		"a--b":     "A  B",
	}
	for in, want := range tests {
		if got := ToTitle(in); got != want {
			t.Errorf("ToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateWritesStarterFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ink-works")
	var out bytes.Buffer
	if err := Generate(dir, NewData(dir), &out); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, name := range []string{"sketchfolio.yaml", ".env.example", "public/favicon.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
		if !strings.Contains(out.String(), name) {
			t.Errorf("output does not report %s: %s", name, out.String())
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "sketchfolio.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var cfg struct {
		Name string `yaml:"name"`
		Live bool   `yaml:"live"`
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("generated config is not YAML: %v", err)
	}
	if cfg.Name != "Ink Works" || !cfg.Live {
		t.Errorf("config = %+v", cfg)
	}
}

func TestGenerateRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	err := Generate(dir, NewData(dir), &bytes.Buffer{})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
}
