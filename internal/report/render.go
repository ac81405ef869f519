package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Debug        bool
	Duration     time.Duration
	FilesScanned int
	FileErrors   int
}

// PrintTable renders verdicts sorted by path then dataset pair, followed by
// a summary footer.
func PrintTable(w io.Writer, verdicts []types.Verdict, opts PrintOptions) {
	sort.Slice(verdicts, func(i, j int) bool {
		if verdicts[i].Path == verdicts[j].Path {
			return verdicts[i].Datasets < verdicts[j].Datasets
		}
		return verdicts[i].Path < verdicts[j].Path
	})
	if len(verdicts) == 0 {
		fmt.Fprintln(w, "No differences found ✅")
	} else {
		tbl := tablewriter.NewTable(w)
		header := []string{"FILE", "DATASETS", "STATUS"}
		if opts.Debug {
			header = append(header, "RULE HITS")
		}
		tbl.Header(header)
		for _, v := range verdicts {
			row := []string{v.Path, v.Datasets, status(v, opts.NoColor)}
			if opts.Debug {
				row = append(row, fmt.Sprintf("%d", len(v.Hits)))
			}
			_ = tbl.Append(row)
		}
		_ = tbl.Render()
	}

	diffs := 0
	for _, v := range verdicts {
		if v.Diff {
			diffs++
		}
	}
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Blocks with differences: %d\n", diffs)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
		if opts.FileErrors > 0 {
			fmt.Fprintf(w, "Files skipped on error: %d\n", opts.FileErrors)
		}
	}
}

// PrintJSON pretty-prints verdicts as JSON for pipelines.
func PrintJSON(w io.Writer, verdicts []types.Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(verdicts)
}

func status(v types.Verdict, noColor bool) string {
	if !v.Diff {
		if noColor {
			return "clean"
		}
		return "\x1b[32mclean\x1b[0m" // green
	}
	if noColor {
		return "diff"
	}
	return "\x1b[31mdiff\x1b[0m" // red
}
