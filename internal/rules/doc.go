// Package rules holds the ordered table of textual diagnostics applied to
// PROC COMPARE listing lines. Each rule maps a fixed summary phrase to a
// difference-flag update; the table is data so individual rules can be
// tested in isolation.
package rules
