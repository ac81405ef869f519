package compscan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/cache"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/config"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/engine"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/report"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/sink"
)

var (
	flagPath           string
	flagExt            string
	flagInclude        string
	flagExclude        string
	flagMaxBytes       int64
	flagResults        string
	flagNoResults      bool
	flagBaseline       string
	flagUpdateBaseline bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan compare listings for dataset differences",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "report directory to scan")
	cmd.Flags().StringVar(&flagExt, "ext", "", "listing extension to match, case-insensitive (default lst)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().StringVar(&flagResults, "results", "", "append verdicts to this JSONL file (default under the report root)")
	cmd.Flags().BoolVar(&flagNoResults, "no-results", false, "do not append verdicts to the results log")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "suppress verdicts recorded in this baseline file")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "rewrite the baseline from this scan's verdicts")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := engine.Config{
		Root:            abs,
		Ext:             pickString(flagExt, lcfg.Ext, gcfg.Ext),
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Debug:           pickBool(flagDebug, lcfg.Debug, gcfg.Debug),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes: true,
	}
	if lcfg.DefaultExcludes != nil {
		cfg.DefaultExcludes = *lcfg.DefaultExcludes
	} else if gcfg.DefaultExcludes != nil {
		cfg.DefaultExcludes = *gcfg.DefaultExcludes
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)

	baselinePath := pickString(flagBaseline, lcfg.Baseline, gcfg.Baseline)
	if flagUpdateBaseline && baselinePath == "" {
		return errors.New("--update-baseline requires a baseline path (--baseline or config)")
	}

	if !flagNoResults {
		p := pickString(flagResults, lcfg.Results, gcfg.Results)
		if p == "" {
			p = sink.DefaultPath(abs)
		}
		cfg.Sink = sink.New(p)
	}

	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Scanning %s for compare differences...\n", abs)
	}

	// Optional progress meter: simple textual bar on stderr
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !flagJSON {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}

	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 && !flagJSON {
		// Skipped files (binary, read failures) never tick, so close the
		// meter out explicitly.
		fmt.Fprintf(os.Stderr, "\r[%d/%d] 100%%\n", total, total)
	}
	for _, ferr := range res.FileErrors {
		fmt.Fprintln(os.Stderr, "warning:", ferr)
	}

	// Snapshot the full scan outcome before baseline suppression so `last`
	// replays what this scan actually found.
	if err := cache.SaveResults(abs, res.Verdicts); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not record last scan:", err)
	}

	verdicts := res.Verdicts
	if baselinePath != "" {
		if flagUpdateBaseline {
			if err := report.SaveBaseline(baselinePath, verdicts); err != nil {
				return fmt.Errorf("update baseline: %w", err)
			}
		} else {
			base, _ := report.LoadBaseline(baselinePath)
			verdicts = report.FilterNewVerdicts(verdicts, base)
		}
	}

	if flagJSON {
		if err := report.PrintJSON(os.Stdout, verdicts); err != nil {
			return err
		}
	} else {
		report.PrintTable(os.Stdout, verdicts, report.PrintOptions{
			NoColor:      noColor,
			Debug:        cfg.Debug,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
			FileErrors:   len(res.FileErrors),
		})
	}

	if report.HasDifferences(verdicts) {
		os.Exit(1)
	}
	return nil
}
