package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// ScanResults is the snapshot of the most recent scan, backing the `last`
// subcommand.
type ScanResults struct {
	Verdicts  []types.Verdict `json:"verdicts"`
	Timestamp time.Time       `json:"timestamp"`
	Root      string          `json:"root"`
	Count     int             `json:"count"`
}

func resultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "compscan_last_scan.json")
	}
	return filepath.Join(root, ".compscan_last_scan.json")
}

// SaveResults writes the last-scan snapshot for root.
func SaveResults(root string, verdicts []types.Verdict) error {
	p := resultsPath(root)
	results := ScanResults{
		Verdicts:  verdicts,
		Timestamp: time.Now(),
		Root:      root,
		Count:     len(verdicts),
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

// LoadResults loads the last-scan snapshot for root.
func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	p := resultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
