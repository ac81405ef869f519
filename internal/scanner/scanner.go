package scanner

import (
	"bufio"
	"io"
	"strings"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/rules"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Marker opens a comparison block. PROC COMPARE prints this section header
// at the top of every page, so a repeat with an unchanged dataset pair is a
// pagination continuation, not a new block.
const Marker = "The COMPARE Procedure"

// Listing lines are essentially unbounded; give bufio plenty of room.
const maxLineBytes = 4 << 20

// Options configures a Scanner.
type Options struct {
	// Debug retains per-line rule hits on each verdict and emits verdicts
	// for non-differing blocks too, instead of filtering to differences.
	Debug bool

	// Rules overrides the diagnostic table. Nil means rules.Default.
	Rules rules.Set
}

// Scanner finds comparison blocks in a single listing file and judges each
// one for differences. Block state lives per ScanReader call, so one
// Scanner may be reused across files but not concurrently.
type Scanner struct {
	opts Options
}

func New(opts Options) *Scanner {
	if opts.Rules == nil {
		opts.Rules = rules.Default
	}
	return &Scanner{opts: opts}
}

// ScanReader consumes the lines of one file in order and returns the block
// verdicts in block-arrival order. A block flushes when a later block-open
// marker names a different dataset pair, or at end of file. Rule hits before
// the first marker accumulate on the unnamed block, which never emits.
func (s *Scanner) ScanReader(path string, r io.Reader) ([]types.Verdict, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var (
		verdicts  []types.Verdict
		datasets  string
		diff      bool
		hits      []types.RuleHit
		pendingID bool
		lineNo    int
	)

	flush := func() {
		if datasets != "" && (diff || s.opts.Debug) {
			v := types.Verdict{Path: path, Datasets: datasets, Diff: diff}
			if s.opts.Debug {
				v.Hits = hits
			}
			verdicts = append(verdicts, v)
		}
		diff = false
		hits = nil
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if pendingID {
			pendingID = false
			id := Normalize(line)
			if id != datasets {
				flush()
				datasets = id
			}
			continue
		}
		if strings.Contains(line, Marker) {
			pendingID = true
			continue
		}

		newFlag, hit, fired := s.opts.Rules.Evaluate(line, diff)
		if fired && s.opts.Debug {
			hit.Line = lineNo
			hits = append(hits, hit)
		}
		diff = newFlag
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// A marker on the very last line has no identifier line to open a new
	// block with; only the block already open gets its final flush.
	flush()
	return verdicts, nil
}
