package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// WriteSpec marshals a spec to TOML under dir, picking a file name that
// does not clobber an existing theme. It returns the path written.
func WriteSpec(dir string, name string, spec ThemeSpec) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	slug := slugify(name)
	if slug == "" {
		slug = "theme"
	}
	path, err := ensureUniquePath(filepath.Join(dir, slug+".toml"))
	if err != nil {
		return "", err
	}
	data, err := toml.Marshal(spec)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Duplicate writes a copy of def into dir and returns the new file path.
// Builtin themes duplicate as a bare inherit spec the user can edit.
func Duplicate(def Definition, dir string) (string, error) {
	displayName := strings.TrimSpace(def.DisplayName)
	if displayName == "" {
		displayName = humaniseSlug(def.Key)
	}
	copyName := displayName + " Copy"

	meta := def.Metadata
	meta.Name = copyName
	if len(meta.Tags) > 0 {
		meta.Tags = append([]string(nil), meta.Tags...)
	}

	spec := def.Spec
	spec.Metadata = &meta
	return WriteSpec(dir, copyName, spec)
}

func ensureUniquePath(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := filepath.Ext(path)
	for i := 1; i < 1000; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not create unique path for %s", path)
}
