package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

func scanLines(t *testing.T, opts Options, lines ...string) []types.Verdict {
	t.Helper()
	vs, err := New(opts).ScanReader("report.lst", strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return vs
}

func TestScan_SingleBlockWithDifferences(t *testing.T) {
	// Scenario A
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.ADSL with WORK.ADSL_QC",
		"Observation Summary",
		"Total Number of Values which Compare Unequal: 5.",
	)
	require.Len(t, vs, 1)
	assert.Equal(t, "report.lst", vs[0].Path)
	assert.Equal(t, "Comparison of WORK.ADSL with WORK.ADSL_QC", vs[0].Datasets)
	assert.True(t, vs[0].Diff)
}

func TestScan_SingleBlockClean(t *testing.T) {
	// Scenario B
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.ADSL with WORK.ADSL_QC",
		"Total Number of Values which Compare Unequal: 0.",
	)
	assert.Empty(t, vs)
}

func TestScan_TwoBlocksFirstDiffers(t *testing.T) {
	// Scenario C
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.ADAE with WORK.ADAE_QC",
		"NOTE: All Variables Compared have Unequal Values.",
		"The COMPARE Procedure",
		"Comparison of WORK.ADSL with WORK.ADSL_QC",
		"Total Number of Values which Compare Unequal: 0.",
	)
	require.Len(t, vs, 1)
	assert.Equal(t, "Comparison of WORK.ADAE with WORK.ADAE_QC", vs[0].Datasets)
	assert.True(t, vs[0].Diff)
}

func TestScan_FlushAtEOF(t *testing.T) {
	// Scenario D: file ends right after a triggering line.
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.ADLB with WORK.ADLB_QC",
		"Number of Observations with Some Compared Variables Unequal: 2.",
	)
	require.Len(t, vs, 1)
	assert.True(t, vs[0].Diff)
}

func TestScan_NoCommonVariablesWarning(t *testing.T) {
	// Scenario E
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"WARNING: The data sets WORK.A and WORK.B have no variables in common. There are no matching variables to compare.",
	)
	require.Len(t, vs, 1)
	assert.True(t, vs[0].Diff)
}

func TestScan_ZeroMarkersYieldZeroVerdicts(t *testing.T) {
	vs := scanLines(t, Options{},
		"Total Number of Values which Compare Unequal: 99.",
		"NOTE: All Variables Compared have Unequal Values.",
	)
	assert.Empty(t, vs)
}

func TestScan_PreBlockHitsDoNotLeakIntoFirstBlock(t *testing.T) {
	vs := scanLines(t, Options{},
		"Total Number of Values which Compare Unequal: 99.",
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"Total Number of Values which Compare Unequal: 0.",
	)
	assert.Empty(t, vs, "unnamed-block hit must not carry into the first named block")
}

func TestScan_PaginationContinuation(t *testing.T) {
	// The same pair re-announced by a page break is not a new block: no
	// flush, no flag reset, exactly one verdict at EOF.
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.ADSL with WORK.ADSL_QC",
		"Number of Variables with Conflicting Types: 1.",
		"\fThe COMPARE Procedure",
		"Comparison of  WORK.ADSL   with WORK.ADSL_QC",
		"Total Number of Values which Compare Unequal: 0.",
	)
	require.Len(t, vs, 1)
	assert.Equal(t, "Comparison of WORK.ADSL with WORK.ADSL_QC", vs[0].Datasets)
	assert.True(t, vs[0].Diff)
}

func TestScan_MarkerOnLastLine(t *testing.T) {
	// No identifier line follows the trailing marker; only the open block
	// flushes.
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"Total Number of Values which Compare Unequal: 3.",
		"The COMPARE Procedure",
	)
	require.Len(t, vs, 1)
	assert.Equal(t, "Comparison of WORK.A with WORK.B", vs[0].Datasets)
}

func TestScan_IdentifierLineNotEvaluatedAsRule(t *testing.T) {
	// A pathological identifier line containing a diagnostic phrase must
	// not raise the flag; it is consumed as the block identifier.
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Total Number of Values which Compare Unequal: 9.",
		"Observation Summary",
	)
	assert.Empty(t, vs)
}

func TestScan_MultipleBlocksAllDiffer(t *testing.T) {
	vs := scanLines(t, Options{},
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"Number of Variables in WORK.A but not in WORK.B: 2.",
		"The COMPARE Procedure",
		"Comparison of WORK.C with WORK.D",
		"Number of Observations in WORK.C but not in WORK.D: 7.",
	)
	require.Len(t, vs, 2)
	assert.Equal(t, "Comparison of WORK.A with WORK.B", vs[0].Datasets)
	assert.Equal(t, "Comparison of WORK.C with WORK.D", vs[1].Datasets)
}

func TestScan_Deterministic(t *testing.T) {
	lines := []string{
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"Number of Variables with Differing Attributes: 1.",
		"The COMPARE Procedure",
		"Comparison of WORK.C with WORK.D",
		"Total Number of Values which Compare Unequal: 0.",
	}
	first := scanLines(t, Options{}, lines...)
	second := scanLines(t, Options{}, lines...)
	assert.Equal(t, first, second)
}

func TestScan_DebugRetainsHitsAndCleanBlocks(t *testing.T) {
	vs := scanLines(t, Options{Debug: true},
		"The COMPARE Procedure",
		"Comparison of WORK.A with WORK.B",
		"Total Number of Values which Compare Unequal: 4.",
		"Number of Variables with Conflicting Types: 0.",
		"The COMPARE Procedure",
		"Comparison of WORK.C with WORK.D",
		"Observation Summary",
	)
	require.Len(t, vs, 2)

	require.Len(t, vs[0].Hits, 2)
	assert.Equal(t, types.RuleHit{Rule: "values_unequal", Line: 3, Value: 4, HasValue: true}, vs[0].Hits[0])
	assert.Equal(t, types.RuleHit{Rule: "type_conflicts", Line: 4, Value: 0, HasValue: true}, vs[0].Hits[1])
	assert.True(t, vs[0].Diff)

	assert.False(t, vs[1].Diff, "debug mode emits clean blocks too")
	assert.Empty(t, vs[1].Hits)
}

func TestScan_EmptyInput(t *testing.T) {
	vs, err := New(Options{}).ScanReader("empty.lst", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, vs)
}
