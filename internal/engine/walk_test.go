package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func collect(t *testing.T, cfg Config) []string {
	t.Helper()
	var got []string
	err := Walk(cfg, func(rel string, _ []byte) {
		got = append(got, filepath.ToSlash(rel))
	}, nil)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return got
}

func TestWalk_ExtensionFilterCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lst", "x")
	writeFile(t, dir, "b.LST", "x")
	writeFile(t, dir, "c.log", "x")
	writeFile(t, dir, "noext", "x")

	got := collect(t, Config{Root: dir, Ext: "lst"})
	if len(got) != 2 {
		t.Fatalf("expected a.lst and b.LST, got %v", got)
	}
}

func TestWalk_CustomExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "b.lst", "x")

	got := collect(t, Config{Root: dir, Ext: "txt"})
	if len(got) != 1 || got[0] != "a.txt" {
		t.Fatalf("expected only a.txt, got %v", got)
	}
}

func TestWalk_Globs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "compare/adsl.lst", "x")
	writeFile(t, dir, "compare/adae.lst", "x")
	writeFile(t, dir, "other/adsl.lst", "x")

	got := collect(t, Config{Root: dir, Ext: "lst", IncludeGlobs: "compare/**", ExcludeGlobs: "**/adae.lst"})
	if len(got) != 1 || got[0] != "compare/adsl.lst" {
		t.Fatalf("expected compare/adsl.lst, got %v", got)
	}
}

func TestWalk_MaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.lst", "ok")
	writeFile(t, dir, "big.lst", string(make([]byte, 2048)))

	// big.lst is over the limit; small.lst survives. The zero-filled big
	// file would also be caught by the binary sniff, but it never gets read.
	got := collect(t, Config{Root: dir, Ext: "lst", MaxBytes: 1024})
	if len(got) != 1 || got[0] != "small.lst" {
		t.Fatalf("expected small.lst, got %v", got)
	}
}

func TestWalk_BinarySniff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bin.lst", "head\x00tail")
	writeFile(t, dir, "text.lst", "head tail")

	got := collect(t, Config{Root: dir, Ext: "lst"})
	if len(got) != 1 || got[0] != "text.lst" {
		t.Fatalf("expected text.lst, got %v", got)
	}
}

func TestWalk_DefaultExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.lst", "x")
	writeFile(t, dir, "work/skip.lst", "x")
	writeFile(t, dir, ".git/skip.lst", "x")

	got := collect(t, Config{Root: dir, Ext: "lst", DefaultExcludes: true})
	if len(got) != 1 || got[0] != "keep.lst" {
		t.Fatalf("expected keep.lst, got %v", got)
	}

	// without default excludes everything is eligible
	all := collect(t, Config{Root: dir, Ext: "lst"})
	if len(all) != 3 {
		t.Fatalf("expected 3 files without default excludes, got %v", all)
	}
}

func TestCountTargets_MirrorsSelection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lst", "x")
	writeFile(t, dir, "b.lst", "x")
	writeFile(t, dir, "c.log", "x")
	writeFile(t, dir, "work/d.lst", "x")

	n, err := CountTargets(Config{Root: dir, DefaultExcludes: true})
	if err != nil {
		t.Fatalf("CountTargets: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
}

func TestWalk_SubdirectoriesIncluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "study1/qc/adsl.lst", "x")
	writeFile(t, dir, "study2/qc/adae.lst", "x")

	got := collect(t, Config{Root: dir, Ext: "lst"})
	if len(got) != 2 {
		t.Fatalf("expected recursive walk to find 2 files, got %v", got)
	}
}

func TestWalk_FailCallbackOnUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(dir, "gone.lst"), filepath.Join(dir, "broken.lst")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	var failed []string
	err := Walk(Config{Root: dir, Ext: "lst"}, func(string, []byte) {}, func(rel string, err error) {
		failed = append(failed, rel)
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(failed) != 1 || failed[0] != "broken.lst" {
		t.Fatalf("expected broken.lst failure, got %v", failed)
	}
}
