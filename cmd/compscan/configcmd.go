package compscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/engine"
)

var (
	cfgOutput   string
	cfgExt      string
	cfgExclude  string
	cfgThreads  int
	cfgMaxBytes int64
	cfgNoColor  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .compscan.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".compscan.yml", "output file path")
	initCmd.Flags().StringVar(&cfgExt, "ext", engine.DefaultExt, "listing extension to match")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	out := map[string]any{
		"ext": cfgExt,
	}
	if cfgExclude != "" {
		out["exclude"] = cfgExclude
	}
	if cfgThreads != 0 {
		out["threads"] = cfgThreads
	}
	if cfgMaxBytes != 0 {
		out["max_bytes"] = cfgMaxBytes
	}
	if cfgNoColor {
		out["no_color"] = true
	}

	b, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "wrote", cfgOutput)
	return nil
}
