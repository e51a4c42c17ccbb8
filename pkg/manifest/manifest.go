// Package manifest loads package descriptors from manifest files.
//
// A Manifest is the flat, already-parsed view of one package: its name,
// version, publishability and the three dependency sections found in
// package.json style manifests. All manifest validation happens here,
// at the adapter boundary - the graph layer assumes well-formed input.
package manifest

import (
	"context"

	"github.com/convoyhq/convoy/pkg/errors"
)

// Manifest describes one package as declared by its manifest file.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private,omitempty"`
	Repo    string `json:"repo,omitempty"` // directory the manifest was read from

	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// Loader supplies a snapshot of manifests for one planning run.
// Implementations re-read their source on every call so that successive
// fixed-point iterations observe manifest changes made in between.
type Loader interface {
	Load(ctx context.Context) ([]Manifest, error)
}

// Validate checks a set of manifests for adapter-boundary errors:
// empty or unsafe package names and duplicate names across repos.
func Validate(manifests []Manifest) error {
	seen := make(map[string]string, len(manifests))
	for _, m := range manifests {
		if err := errors.ValidatePackageName(m.Name); err != nil {
			return err
		}
		if prev, ok := seen[m.Name]; ok {
			return errors.New(errors.ErrCodeDuplicatePackage,
				"package %q declared in both %s and %s", m.Name, prev, m.Repo)
		}
		seen[m.Name] = m.Repo
	}
	return nil
}
