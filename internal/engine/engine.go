package engine

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/cache"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/scanner"
	"github.com/kulakowski-lukasz/sas-clinical-utils/internal/types"
)

// Config controls a scan: scope, selection filters, and output wiring.
type Config struct {
	Root            string
	Ext             string // listing extension without the dot, default "lst"
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	Debug           bool
	NoCache         bool
	DefaultExcludes bool
	Progress        func()

	// Sink receives each file's verdicts as they are produced. Optional.
	Sink Sink
}

// Sink accumulates verdicts in a durable store. Implementations must be
// safe for use from a single goroutine; the engine serializes calls.
type Sink interface {
	Append(verdicts []types.Verdict) error
}

// DefaultExt is the report extension scanned when none is configured.
const DefaultExt = "lst"

// Result contains verdicts and basic scan statistics. Verdicts for
// cache-hit files come from the cache; FilesScanned counts only files
// actually parsed.
type Result struct {
	Verdicts     []types.Verdict
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
	FileErrors   []error
}

type job struct {
	rel  string
	data []byte
	hash string
}

// Scan runs a scan and returns only verdicts (without stats).
func Scan(cfg Config) ([]types.Verdict, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Verdicts, nil
}

// ScanWithStats walks the report directory, runs one block scanner per
// file, and returns verdicts along with timing and counts. An unreadable
// root is fatal; an unreadable file is recorded and skipped.
//
// Every discovered file contributes its verdicts to the result: unchanged
// files replay them from the cache instead of re-parsing, and only freshly
// parsed files are forwarded to the sink (the sink is append-only, so
// replays would duplicate records). Debug scans bypass the cache both
// ways: cached verdicts carry no rule hits or clean blocks.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result

	st, err := os.Stat(cfg.Root)
	if err != nil {
		return result, fmt.Errorf("open report directory: %w", err)
	}
	if !st.IsDir() {
		return result, fmt.Errorf("open report directory: %s is not a directory", cfg.Root)
	}
	if cfg.Ext == "" {
		cfg.Ext = DefaultExt
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}

	useCache := !cfg.NoCache && !cfg.Debug
	var db cache.DB
	if useCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	started := time.Now()
	var jobs []job
	walkErr := Walk(cfg, func(rel string, data []byte) {
		h := fastHash(data)
		if useCache {
			if e, ok := db.Entries[rel]; ok && e.Hash == h {
				result.Verdicts = append(result.Verdicts, e.Verdicts...)
				result.CacheHits++
				if cfg.Progress != nil {
					cfg.Progress()
				}
				return
			}
		}
		jobs = append(jobs, job{rel: rel, data: data, hash: h})
	}, func(rel string, err error) {
		result.FileErrors = append(result.FileErrors, fmt.Errorf("read %s: %w", rel, err))
	})
	if walkErr != nil {
		return result, fmt.Errorf("open report directory: %w", walkErr)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	ch := make(chan job)
	var sinkErr error
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scn := scanner.New(scanner.Options{Debug: cfg.Debug})
			for j := range ch {
				vs, err := scn.ScanReader(j.rel, bytes.NewReader(j.data))
				mu.Lock()
				if err != nil {
					result.FileErrors = append(result.FileErrors, fmt.Errorf("scan %s: %w", j.rel, err))
				} else {
					result.Verdicts = append(result.Verdicts, vs...)
					if cfg.Sink != nil && len(vs) > 0 && sinkErr == nil {
						sinkErr = cfg.Sink.Append(vs)
					}
					updated[j.rel] = cache.Entry{Hash: j.hash, Verdicts: vs}
				}
				result.FilesScanned++
				if cfg.Progress != nil {
					cfg.Progress()
				}
				mu.Unlock()
			}
		}()
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	result.Duration = time.Since(started)
	if sinkErr != nil {
		return result, fmt.Errorf("append results: %w", sinkErr)
	}
	if useCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]cache.Entry{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

func fastHash(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
