package compscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagThreads int
	flagNoColor bool
	flagNoCache bool
	flagDebug   bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the compscan CLI.
var rootCmd = &cobra.Command{
	Use:           "compscan",
	Short:         "Find dataset differences in PROC COMPARE listings",
	Long:          "Compscan scans a directory of SAS PROC COMPARE listing files and reports every comparison block whose datasets differ.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the compscan CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "retain per-line rule hits and report non-differing blocks")
}
