package manifest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/convoyhq/convoy/pkg/errors"
)

// WorkspaceLoader discovers and parses manifests under a set of repo roots.
// Every Load call re-reads the filesystem, so the loader can be reused
// across fixed-point iterations while manifests change on disk.
type WorkspaceLoader struct {
	Roots []string
}

// NewWorkspaceLoader creates a loader over the given repo roots.
func NewWorkspaceLoader(roots ...string) *WorkspaceLoader {
	return &WorkspaceLoader{Roots: roots}
}

// Load walks each root, parses every package.json found, and returns the
// manifests sorted by repo path for reproducible snapshots. Validation
// failures (bad names, duplicates) abort the load.
func (l *WorkspaceLoader) Load(ctx context.Context) ([]Manifest, error) {
	var paths []string
	for _, root := range l.Roots {
		found, err := discover(ctx, root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	sort.Strings(paths)

	manifests := make([]Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}

	if err := Validate(manifests); err != nil {
		return nil, err
	}
	return manifests, nil
}

// discover returns the paths of all manifests under root.
// node_modules and hidden directories are skipped.
func discover(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "repo root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "repo root %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			name := d.Name()
			if name == "node_modules" || (strings.HasPrefix(name, ".") && path != root) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ManifestFilename {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", root)
	}
	return paths, nil
}
