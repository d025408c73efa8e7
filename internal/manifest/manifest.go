// Package manifest resolves an `ash.mod` file into the list of source
// files the driver should check and the compiler-version constraint it
// must satisfy. This is ambient CLI/config surface (SPEC_FULL.md
// "Configuration"), grounded on the teacher's package manager
// (internal/packagemanager/resolver.go's semver.Constraints usage) and
// enriched with golang.org/x/mod/modfile, since `ash.mod` is
// deliberately go.mod-compatible syntax: `module`, `go`, `require`.
// The core checker reads no files and consults no environment
// variables (spec.md §6 "Environment: None"); ash.mod is resolved
// entirely here, before any source reaches internal/checker.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/mod/modfile"
)

// Manifest is the resolved contents of an `ash.mod` file.
type Manifest struct {
	ModulePath      string
	Dir             string
	Files           []string // paths (Dir joined with the file name) of the .ash files to check, sorted
	RequiredVersion string   // the `require ashc <constraint>` directive, if any
}

// Load resolves the module rooted at dir. Files is every *.ash file
// directly in dir, whether or not dir/ash.mod exists; ash.mod has no
// directive that lists files. If ash.mod does not exist, ModulePath and
// RequiredVersion are empty — ash.mod itself is optional.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "ash.mod")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		files, ferr := discoverAshFiles(dir)
		if ferr != nil {
			return nil, ferr
		}
		return &Manifest{Dir: dir, Files: files}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ash.mod: %w", err)
	}

	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing ash.mod: %w", err)
	}

	m := &Manifest{Dir: dir}
	if f.Module != nil {
		m.ModulePath = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		if req.Mod.Path == "ashc" {
			m.RequiredVersion = req.Mod.Version
		}
	}

	files, err := discoverAshFiles(dir)
	if err != nil {
		return nil, err
	}
	m.Files = files

	return m, nil
}

// discoverAshFiles lists every *.ash file directly inside dir, sorted
// for deterministic check order.
func discoverAshFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading module directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".ash" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// CheckVersion validates RequiredVersion (if set) against the
// compiler's own current version. A constraint violation is always a
// driver-level failure — it never reaches internal/checker.
func (m *Manifest) CheckVersion(current string) error {
	if m.RequiredVersion == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.RequiredVersion)
	if err != nil {
		return fmt.Errorf("ash.mod: invalid ashc version constraint %q: %w", m.RequiredVersion, err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("ashc: invalid own version %q: %w", current, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("ash.mod requires ashc %s, but this is ashc %s", m.RequiredVersion, current)
	}
	return nil
}
