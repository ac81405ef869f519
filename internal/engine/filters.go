package engine

import "strings"

// Directories never worth descending into when default excludes are on:
// VCS internals and the scratch/output trees SAS batch runs leave behind.
var defaultExcludeDirs = map[string]bool{
	".git":    true,
	".svn":    true,
	"work":    true,
	"saswork": true,
	"backup":  true,
	"archive": true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[strings.ToLower(name)] || strings.HasPrefix(name, ".git")
}
