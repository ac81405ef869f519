package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Walk traverses the report directory and invokes handle for each eligible
// listing file with its content. Files that cannot be read are reported via
// fail and skipped; only a broken root aborts the walk.
func Walk(cfg Config, handle func(rel string, data []byte), fail func(rel string, err error)) error {
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cfg.Root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && p != cfg.Root && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !hasReportExt(rel, cfg.Ext) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		info, _ := d.Info()
		if cfg.MaxBytes > 0 && info != nil && info.Size() > cfg.MaxBytes {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			if fail != nil {
				fail(rel, err)
			}
			return nil
		}
		if looksBinary(b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// CountTargets estimates how many files a scan would process, for the
// progress meter. It mirrors Walk's selection but avoids reading content,
// so binary files and cache hits are still counted.
func CountTargets(cfg Config) (int, error) {
	if cfg.Ext == "" {
		cfg.Ext = DefaultExt
	}
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cfg.Root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && p != cfg.Root && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !hasReportExt(rel, cfg.Ext) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		info, _ := d.Info()
		if cfg.MaxBytes > 0 && info != nil && info.Size() > cfg.MaxBytes {
			return nil
		}
		count++
		return nil
	})
	return count, err
}

// hasReportExt matches the final dot-segment case-insensitively.
func hasReportExt(rel, ext string) bool {
	e := strings.TrimPrefix(filepath.Ext(rel), ".")
	return strings.EqualFold(e, ext)
}

func allowedByGlobs(rel string, cfg Config) bool {
	rel = filepath.ToSlash(rel)
	if cfg.IncludeGlobs != "" {
		ok := false
		for _, g := range splitGlobs(cfg.IncludeGlobs) {
			if m, _ := doublestar.Match(g, rel); m {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, g := range splitGlobs(cfg.ExcludeGlobs) {
		if m, _ := doublestar.Match(g, rel); m {
			return false
		}
	}
	return true
}

func splitGlobs(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
