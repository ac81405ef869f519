package compscan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/cache"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/report"
)

var flagLastPath string

func init() {
	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the verdicts from the previous scan",
		RunE:  runLast,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagLastPath, "path", "p", ".", "report directory the scan ran against")
}

func runLast(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagLastPath)
	results, err := cache.LoadResults(abs)
	if err != nil {
		return fmt.Errorf("no previous scan recorded for %s", abs)
	}

	if flagJSON {
		return report.PrintJSON(os.Stdout, results.Verdicts)
	}
	fmt.Fprintf(os.Stderr, "Last scan of %s at %s\n", results.Root, results.Timestamp.Format("2006-01-02 15:04:05"))
	report.PrintTable(os.Stdout, results.Verdicts, report.PrintOptions{NoColor: flagNoColor})
	return nil
}
