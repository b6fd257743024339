package modeling

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/oddscout/internal/models"
)

// ArtifactStore persists fitted models between runs. Load reports the
// artifact's last-modified time so callers can apply a staleness policy.
type ArtifactStore interface {
	Load(sport models.Sport) (Model, time.Time, error)
	Store(sport models.Sport, model Model) error
}

// artifactEnvelope wraps serialized model parameters with the family tag
// needed to reconstruct the concrete type.
type artifactEnvelope struct {
	Kind     Kind            `json:"kind"`
	FittedAt time.Time       `json:"fitted_at"`
	Params   json.RawMessage `json:"params"`
}

// DiskArtifactStore stores one JSON artifact per sport under a cache
// directory. Staleness is read from the file's modification time.
type DiskArtifactStore struct {
	dir string
}

// NewDiskArtifactStore creates the artifact directory if needed
func NewDiskArtifactStore(cacheDir string) (*DiskArtifactStore, error) {
	dir := filepath.Join(cacheDir, "models")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create model cache dir: %w", err)
	}
	return &DiskArtifactStore{dir: dir}, nil
}

// Load deserializes the cached model for a sport. Returns models.ErrNotFound
// when no artifact exists.
func (s *DiskArtifactStore) Load(sport models.Sport) (Model, time.Time, error) {
	path := s.path(sport)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, models.ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to stat model artifact: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var envelope artifactEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	model, err := NewModel(envelope.Kind)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := json.Unmarshal(envelope.Params, model); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode model parameters: %w", err)
	}

	return model, info.ModTime(), nil
}

// Store serializes a fitted model, replacing any previous artifact
func (s *DiskArtifactStore) Store(sport models.Sport, model Model) error {
	params, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to encode model parameters: %w", err)
	}

	envelope := artifactEnvelope{
		Kind:     model.Kind(),
		FittedAt: time.Now().UTC(),
		Params:   params,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}

	if err := os.WriteFile(s.path(sport), data, 0o644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

func (s *DiskArtifactStore) path(sport models.Sport) string {
	return filepath.Join(s.dir, string(sport)+".json")
}
