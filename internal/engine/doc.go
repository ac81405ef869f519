// Package engine orchestrates a scan: it enumerates listing files under the
// report directory, runs one block scanner per file, and forwards verdicts
// to the configured sink. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
