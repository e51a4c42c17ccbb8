package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/convoyhq/convoy/pkg/errors"
)

// ManifestFilename is the manifest file convoy looks for in each repo.
const ManifestFilename = "package.json"

// packageFile mirrors the subset of package.json convoy reads.
type packageFile struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Private          bool              `json:"private"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// ReadFile parses a single package.json into a Manifest.
// The manifest's Repo is set to the directory containing the file.
func ReadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", path)
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	if pkg.Name == "" {
		return Manifest{}, errors.New(errors.ErrCodeInvalidManifest, "manifest %s has no name", path)
	}

	return Manifest{
		Name:             pkg.Name,
		Version:          pkg.Version,
		Private:          pkg.Private,
		Repo:             filepath.Dir(path),
		Dependencies:     pkg.Dependencies,
		DevDependencies:  pkg.DevDependencies,
		PeerDependencies: pkg.PeerDependencies,
	}, nil
}
