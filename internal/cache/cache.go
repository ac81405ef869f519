package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Entry is the cached outcome for one listing file: its content hash and
// the verdicts the last parse produced. Keeping verdicts in the cache lets
// a re-scan of an unchanged file report its differences without re-parsing
// and without appending duplicates to the results sink.
type Entry struct {
	Hash     string          `json:"hash"`
	Verdicts []types.Verdict `json:"verdicts,omitempty"`
}

// DB maps listing paths (relative to the report root) to cached outcomes.
type DB struct {
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to the report root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "compscancache.json")
	}
	return filepath.Join(root, ".compscancache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}
