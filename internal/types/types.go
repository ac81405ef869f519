package types

// Verdict is the summary record for one comparison block found in a listing
// file. Outside debug mode only blocks with Diff=true are ever emitted.
type Verdict struct {
	Path     string    `json:"path"`
	Datasets string    `json:"datasets"`
	Diff     bool      `json:"diff"`
	Hits     []RuleHit `json:"hits,omitempty"` // retained only in debug mode
}

// RuleHit records a diagnostic rule firing on one line of a block.
type RuleHit struct {
	Rule     string `json:"rule"`
	Line     int    `json:"line"`
	Value    int    `json:"value,omitempty"`     // extracted count for numeric rules
	HasValue bool   `json:"has_value,omitempty"` // false when the trailing token was not numeric
}
