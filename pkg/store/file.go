package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/plan"
)

// FileStore is a file-based plan archive for CLI usage.
// Plans are stored as JSON files named by plan ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based plan archive.
// If baseDir is empty, defaults to ~/.config/convoy/plans/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "convoy", "plans")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create plan dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) planPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save writes the plan as an indented JSON file.
func (s *FileStore) Save(ctx context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode plan %s", p.ID)
	}
	if err := os.WriteFile(s.planPath(p.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write plan %s", p.ID)
	}
	return nil
}

// Get reads a plan by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.planPath(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read plan %s", id)
	}

	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse plan %s", id)
	}
	return &p, nil
}

// List returns summaries of all archived plans, newest first.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list plans")
	}

	var summaries []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name()))
		if err != nil {
			continue
		}
		var p plan.Plan
		if err := json.Unmarshal(data, &p); err != nil {
			continue // skip corrupt entries
		}
		summaries = append(summaries, summarize(&p))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt > summaries[j].CreatedAt
	})
	return summaries, nil
}

// Delete removes a plan file. A missing file is not an error.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.planPath(id))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "delete plan %s", id)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
