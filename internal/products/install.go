package products

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/mod/semver"

	"github.com/dadi/cli/internal/config/schema"
)

// PackageDir returns the directory pkg is installed to below baseDir.
func PackageDir(baseDir, pkg string) string {
	return filepath.Join(baseDir, "node_modules", filepath.FromSlash(pkg))
}

// InstalledVersion reads the version of pkg installed below baseDir.
func InstalledVersion(fsys afero.Fs, baseDir, pkg string) (string, error) {
	path := filepath.Join(PackageDir(baseDir, pkg), "package.json")
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found in %s", ErrAppNotInstalled, pkg, baseDir)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if manifest.Version == "" {
		return "", fmt.Errorf("%s has no version", path)
	}
	return manifest.Version, nil
}

// CheckVersion verifies that the installed version of the product is at
// least its MinVersion. Products without a MinVersion always pass.
func (p *Product) CheckVersion(fsys afero.Fs, baseDir string) (string, error) {
	if p.MinVersion == "" {
		return "", nil
	}

	installed, err := InstalledVersion(fsys, baseDir, p.Package)
	if err != nil {
		return "", err
	}

	have, want := canonical(installed), canonical(p.MinVersion)
	if !semver.IsValid(have) {
		return installed, fmt.Errorf("%s: invalid version %q", p.Package, installed)
	}
	if semver.Compare(have, want) < 0 {
		return installed, fmt.Errorf("%w: this command requires version %s or greater of %s (%s found)",
			ErrUnsupportedVersion, p.MinVersion, p.Package, installed)
	}
	return installed, nil
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// LoadSchema returns the product's built-in schema overlaid with the schema
// shipped by the installed package (config/schema.json, when present) and
// with the file at extraPath (when not empty).
func (p *Product) LoadSchema(fsys afero.Fs, baseDir, extraPath string) (schema.Schema, error) {
	s := schema.Merge(p.Schema, nil)

	shipped := filepath.Join(PackageDir(baseDir, p.Package), "config", "schema.json")
	exists, err := afero.Exists(fsys, shipped)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", shipped, err)
	}
	if exists {
		overlay, err := schema.LoadFile(fsys, shipped)
		if err != nil {
			return nil, err
		}
		s = schema.Merge(s, overlay)
	}

	if extraPath != "" {
		overlay, err := schema.LoadFile(fsys, extraPath)
		if err != nil {
			return nil, err
		}
		s = schema.Merge(s, overlay)
	}

	return s, nil
}
