// Package compscan provides the command-line interface for the compscan
// tool. It configures subcommands (scan, last, config, completion), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/kulakowski-lukasz/sas-clinical-utils/cmd/compscan"
//	func main() { compscan.Execute() }
package compscan
