// Package core provides a small, stable facade over compscan's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so reporting pipelines can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "compare-output", Threads: 0}
//	verdicts, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalVerdicts(os.Stdout, verdicts)
package core
