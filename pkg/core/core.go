package core

import (
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/engine"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Result = engine.Result
type Verdict = types.Verdict
type RuleHit = types.RuleHit

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) ([]Verdict, error) {
	return engine.Scan(cfg)
}

// ScanWithStats runs a scan and returns verdicts along with timing and
// counts, for callers that surface their own summaries.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}
