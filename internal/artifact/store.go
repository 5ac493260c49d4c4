package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
)

// Store persists typed artifacts under base_dir/<project_id>/artifacts/<Type>.json.
// Writes for a single (project_id, artifact_type) key are serialized by a
// per-key mutex, mirroring the one-keyed-registry-per-process idiom used
// elsewhere in this codebase for the provider rate limiters.
type Store struct {
	baseDir string
	locks   sync.Map // key -> *sync.Mutex
}

// New creates a Store rooted at baseDir. baseDir is created lazily on first
// write.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) lockFor(projectID string, t Type) func() {
	key := projectID + "/" + string(t)
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Store) artifactsDir(projectID string) string {
	return filepath.Join(s.baseDir, projectID, "artifacts")
}

func (s *Store) path(projectID string, t Type) string {
	return filepath.Join(s.artifactsDir(projectID), string(t)+".json")
}

// Save atomically writes value as the current version of (project_id,
// artifact_type), using write-temp-then-rename for crash safety.
func (s *Store) Save(projectID string, t Type, value any) error {
	unlock := s.lockFor(projectID, t)
	defer unlock()

	dir := s.artifactsDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pipelineerr.IO("creating artifacts directory", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return pipelineerr.Internal("marshaling artifact", err)
	}

	target := s.path(projectID, t)
	tmp, err := os.CreateTemp(dir, string(t)+".*.tmp")
	if err != nil {
		return pipelineerr.IO("creating temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pipelineerr.IO("writing artifact", err)
	}
	if err := tmp.Close(); err != nil {
		return pipelineerr.IO("closing temp file", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return pipelineerr.IO("renaming artifact into place", err)
	}

	return nil
}

// Load decodes the current version of (project_id, artifact_type) into out,
// which must be a pointer to the matching artifact struct.
func (s *Store) Load(projectID string, t Type, out any) error {
	unlock := s.lockFor(projectID, t)
	defer unlock()

	data, err := os.ReadFile(s.path(projectID, t))
	if err != nil {
		if os.IsNotExist(err) {
			return pipelineerr.NotFound("artifact " + string(t) + " not found for project " + projectID)
		}
		return pipelineerr.IO("reading artifact", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return pipelineerr.Wrap(pipelineerr.KindIO, "artifact "+string(t)+" is corrupt", err)
	}

	return nil
}

// UpdateStatus transitions the status of an already-persisted artifact
// in place, recording note as Header.ModelMetadata.Notes when non-empty,
// without needing to know the artifact's concrete Go type: the file is
// decoded generically, the status/timestamp/notes fields are patched, and
// the result is re-encoded with the same write-temp-then-rename safety as
// Save.
func (s *Store) UpdateStatus(projectID string, t Type, status Status, note string) error {
	unlock := s.lockFor(projectID, t)
	defer unlock()

	path := s.path(projectID, t)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pipelineerr.NotFound("artifact " + string(t) + " not found for project " + projectID)
		}
		return pipelineerr.IO("reading artifact", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return pipelineerr.Wrap(pipelineerr.KindIO, "artifact "+string(t)+" is corrupt", err)
	}

	now := time.Now()

	statusJSON, _ := json.Marshal(status)
	doc["status"] = statusJSON
	doc["updated_at"], _ = json.Marshal(now)

	if note != "" {
		var meta map[string]json.RawMessage
		if raw, ok := doc["model_metadata"]; ok {
			_ = json.Unmarshal(raw, &meta)
		}
		if meta == nil {
			meta = map[string]json.RawMessage{}
		}
		meta["notes"], _ = json.Marshal(note)
		meta["generated_at"], _ = json.Marshal(now)
		metaJSON, _ := json.Marshal(meta)
		doc["model_metadata"] = metaJSON
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pipelineerr.Internal("marshaling artifact", err)
	}

	dir := s.artifactsDir(projectID)
	tmp, err := os.CreateTemp(dir, string(t)+".*.tmp")
	if err != nil {
		return pipelineerr.IO("creating temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return pipelineerr.IO("writing artifact", err)
	}
	if err := tmp.Close(); err != nil {
		return pipelineerr.IO("closing temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return pipelineerr.IO("renaming artifact into place", err)
	}

	return nil
}

// Exists reports whether (project_id, artifact_type) has been saved.
func (s *Store) Exists(projectID string, t Type) bool {
	_, err := os.Stat(s.path(projectID, t))
	return err == nil
}

// headerOnly is used to read just the status field without knowing the full
// artifact type, for List.
type headerOnly struct {
	Status Status `json:"status"`
}

// List returns every artifact type currently persisted for the project,
// along with its approval status.
func (s *Store) List(projectID string) (map[Type]Status, error) {
	dir := s.artifactsDir(projectID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[Type]Status{}, nil
		}
		return nil, pipelineerr.IO("listing artifacts", err)
	}

	result := make(map[Type]Status, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".json" {
			continue
		}
		t := Type(name[:len(name)-len(ext)])

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var h headerOnly
		if err := json.Unmarshal(data, &h); err != nil {
			continue
		}
		result[t] = h.Status
	}

	return result, nil
}

// Delete recursively removes every artifact (and result/export file) owned
// by the project.
func (s *Store) Delete(projectID string) error {
	dir := filepath.Join(s.baseDir, projectID)
	if err := os.RemoveAll(dir); err != nil {
		return pipelineerr.IO("deleting project", err)
	}
	return nil
}

// ProjectDir returns the storage-scoped root directory for a project, used
// by the search executor and exporter to place side files alongside
// artifacts.
func (s *Store) ProjectDir(projectID string) string {
	return filepath.Join(s.baseDir, projectID)
}
