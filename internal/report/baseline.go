package report

import (
	"encoding/json"
	"os"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Baseline holds dataset pairs whose differences have already been triaged.
// Baselined verdicts are suppressed from output until the baseline is
// regenerated.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	return b, nil
}

// SaveBaseline records the differing verdicts as triaged. Clean blocks
// (seen in debug scans) are never baselined: they do not raise the exit
// code and a clean block must not mask a later regression on the same
// dataset pair.
func SaveBaseline(path string, verdicts []types.Verdict) error {
	b := Baseline{Items: map[string]bool{}}
	for _, v := range verdicts {
		if !v.Diff {
			continue
		}
		b.Items[key(v)] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterNewVerdicts drops verdicts already present in the baseline.
func FilterNewVerdicts(verdicts []types.Verdict, base Baseline) []types.Verdict {
	var out []types.Verdict
	for _, v := range verdicts {
		if !base.Items[key(v)] {
			out = append(out, v)
		}
	}
	return out
}

// HasDifferences reports whether any verdict carries a raised flag, for
// pipeline exit-code gating.
func HasDifferences(verdicts []types.Verdict) bool {
	for _, v := range verdicts {
		if v.Diff {
			return true
		}
	}
	return false
}

func key(v types.Verdict) string {
	return v.Path + "|" + v.Datasets
}
