// Package scanner implements the line-driven state machine that splits one
// PROC COMPARE listing file into comparison blocks and judges each block
// for differences. It is internal; the engine package drives it per file.
package scanner
