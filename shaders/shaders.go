// Package shaders holds the GLSL sources of the material programs. The
// sources are embedded; a directory on disk can shadow them so edits show
// up on reload without a rebuild.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.vs *.fs
var embedded embed.FS

// ErrNotFound is returned for a stage that is neither on disk nor embedded.
var ErrNotFound = errors.New("shaders: source not found")

// Source resolves shader stages by file name.
type Source struct {
	// Dir, when set, is searched before the embedded sources.
	Dir string
}

// Load returns the source text of the named stage.
func (s Source) Load(name string) (string, error) {
	if s.Dir != "" {
		b, err := os.ReadFile(filepath.Join(s.Dir, name))
		switch {
		case err == nil:
			return string(b), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("shader %s: %w", name, err)
		}
	}
	b, err := embedded.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return string(b), nil
}

// Names lists every embedded stage.
func Names() []string {
	entries, _ := embedded.ReadDir(".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
