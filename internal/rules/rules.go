package rules

import (
	"strconv"
	"strings"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Rule is one diagnostic check against a line of PROC COMPARE output.
// A rule triggers when every needle appears in the line (plain substring
// containment, case-sensitive, anchored nowhere).
type Rule struct {
	ID      string
	Needles []string
	// Numeric rules read the rightmost numeric token on the line and raise
	// the difference flag only when it is greater than zero. Non-numeric
	// rules raise the flag unconditionally when triggered.
	Numeric bool
}

// Matches reports whether the line triggers this rule.
func (r Rule) Matches(line string) bool {
	for _, n := range r.Needles {
		if !strings.Contains(line, n) {
			return false
		}
	}
	return true
}

// Set is an ordered rule table evaluated with first-match semantics.
type Set []Rule

// Default is the PROC COMPARE summary vocabulary, in priority order. The
// original report encodes these as an exclusive else-if chain, so at most
// one rule fires per line.
var Default = Set{
	{ID: "vars_one_sided", Needles: []string{"Number of Variables in", "but not in"}, Numeric: true},
	{ID: "obs_one_sided", Needles: []string{"Number of Observations in", "but not in"}, Numeric: true},
	{ID: "obs_some_unequal", Needles: []string{"Number of Observations with Some Compared Variables Unequal:"}, Numeric: true},
	{ID: "obs_all_unequal", Needles: []string{"Number of Observations with All Compared Variables Unequal:"}, Numeric: true},
	{ID: "vars_some_unequal", Needles: []string{"Number of Variables Compared with Some Observations Unequal:"}, Numeric: true},
	{ID: "vars_all_unequal", Needles: []string{"Number of Variables Compared with All Observations Unequal:"}, Numeric: true},
	{ID: "all_vars_unequal", Needles: []string{"All Variables Compared have Unequal Values"}},
	{ID: "no_common_vars", Needles: []string{"have no variables in common", "There are no matching variables to compare"}},
	{ID: "type_conflicts", Needles: []string{"Number of Variables with Conflicting Types:"}, Numeric: true},
	{ID: "attr_differences", Needles: []string{"Number of Variables with Differing Attributes:"}, Numeric: true},
	{ID: "values_unequal", Needles: []string{"Total Number of Values which Compare Unequal:"}, Numeric: true},
}

// Evaluate tests the line against the table in order and returns the new
// difference flag. The returned hit describes the first rule that fired;
// fired is false when no rule matched and the flag is passed through.
// Pure function, no I/O.
func (s Set) Evaluate(line string, flag bool) (newFlag bool, hit types.RuleHit, fired bool) {
	for _, r := range s {
		if !r.Matches(line) {
			continue
		}
		hit = types.RuleHit{Rule: r.ID}
		if !r.Numeric {
			return true, hit, true
		}
		if v, ok := LastNumber(line); ok {
			hit.Value = v
			hit.HasValue = true
			return flag || v > 0, hit, true
		}
		// Non-numeric trailing token: treated as "no value", flag unchanged.
		return flag, hit, true
	}
	return flag, types.RuleHit{}, false
}

// LastNumber extracts the rightmost whitespace-delimited token, strips
// trailing punctuation, and parses it as an integer. ok is false when the
// line is empty or the token is not numeric.
func LastNumber(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	tok := strings.TrimRight(fields[len(fields)-1], ".,;:")
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
