package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWithoutManifestDiscoversAshFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ash", "fn main()->unit{}")
	writeFile(t, dir, "util.ash", "struct P{x:int}")
	writeFile(t, dir, "notes.txt", "ignored")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.RequiredVersion != "" {
		t.Errorf("expected no version constraint without ash.mod, got %q", m.RequiredVersion)
	}
	if len(m.Files) != 2 {
		t.Fatalf("expected 2 .ash files, got %d: %v", len(m.Files), m.Files)
	}
}

func TestLoadParsesModuleAndRequireDirectives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ash.mod", "module example.com/prog\n\ngo 1.21\n\nrequire ashc v1.2.3\n")
	writeFile(t, dir, "main.ash", "fn main()->unit{}")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.ModulePath != "example.com/prog" {
		t.Errorf("got module path %q", m.ModulePath)
	}
	if m.RequiredVersion != "v1.2.3" {
		t.Errorf("got required version %q", m.RequiredVersion)
	}
}

func TestCheckVersionRejectsMismatch(t *testing.T) {
	m := &Manifest{RequiredVersion: ">=2.0.0"}
	if err := m.CheckVersion("1.0.0"); err == nil {
		t.Fatal("expected version constraint violation")
	}
	if err := m.CheckVersion("2.5.0"); err != nil {
		t.Errorf("expected 2.5.0 to satisfy >=2.0.0: %v", err)
	}
}

func TestCheckVersionIsNoopWithoutConstraint(t *testing.T) {
	m := &Manifest{}
	if err := m.CheckVersion("anything"); err != nil {
		t.Errorf("expected no-op when RequiredVersion is unset: %v", err)
	}
}
