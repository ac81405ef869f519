package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Entry is one appended verdict with the time it was recorded.
type Entry struct {
	Time    time.Time     `json:"time"`
	Verdict types.Verdict `json:"verdict"`
}

// Log is an append-only JSONL store of verdicts. It satisfies the engine's
// Sink interface.
type Log struct {
	path string
	now  func() time.Time
}

// New opens a log at an explicit path.
func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// DefaultPath places the log under .git when present so it is not swept up
// with the listing files, mirroring the cache location policy.
func DefaultPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "compscan_results.jsonl")
	}
	return filepath.Join(root, ".compscan_results.jsonl")
}

// Append writes one JSON line per verdict. Owner-only permissions: result
// records identify datasets under QC review.
func (l *Log) Append(verdicts []types.Verdict) error {
	if len(verdicts) == 0 {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open results log: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, v := range verdicts {
		if err := enc.Encode(Entry{Time: l.now(), Verdict: v}); err != nil {
			return fmt.Errorf("failed to write result record: %w", err)
		}
	}
	return nil
}

// History returns all recorded entries, newest first. Each line is decoded
// independently, so a corrupt line loses only itself.
func (l *Log) History() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results log: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
