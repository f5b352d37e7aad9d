package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunListFiltersCatalogue(t *testing.T) {
	var out bytes.Buffer
	if err := runList([]string{"-filter", "SQUARE"}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "a ") || !strings.HasPrefix(lines[1], "c ") {
		t.Errorf("lines = %q", lines)
	}
}

func TestRunListRejectsUnknownFilter(t *testing.T) {
	if err := runList([]string{"-filter", "PORTRAIT"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func TestRunRenderWritesStaticPage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.html")
	args := []string{"-config", filepath.Join(t.TempDir(), "missing.yaml"), "-w", "1200", "-filter", "ALL", "-o", out}
	if err := runRender(args, &bytes.Buffer{}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(html)
	for _, want := range []string{`id="gallery"`, `id="node-b"`, `id="overlay"`, "editor.p5js.org/AnnaUsername/present/"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Contains(s, "gallery.js") {
		t.Error("static export should not load the live script")
	}
}

func TestRunInitScaffolds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	var out bytes.Buffer
	if err := runInit(dir, &out); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sketchfolio.yaml")); err != nil {
		t.Error(err)
	}
}
