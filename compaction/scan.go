package compaction

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// logFileName is the exact name of the per-store engine log file.
	logFileName = "LOG"

	// errorMarker is the literal, case-sensitive marker the engine
	// writes when background compaction fails.
	errorMarker = "Compaction error"
)

// scan walks the log root for LOG files and returns the paths of those
// containing the corruption marker, in lexical order. File contents
// are scanned through a bounded worker group; the walk itself is
// sequential and cheap.
func scan(ctx context.Context, logRoot string, concurrency int) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(logRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == logFileName {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var hits []string

	for _, path := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := fileContains(path, errorMarker)
			if err != nil {
				return err
			}
			if found {
				mu.Lock()
				hits = append(hits, path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(hits)
	return hits, nil
}

// fileContains reports whether the file holds marker anywhere in its
// contents. Files are read in chunks with marker-sized overlap so a
// marker spanning a chunk boundary is still found.
func fileContains(path, marker string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	const chunkSize = 64 * 1024
	overlap := len(marker) - 1
	buf := make([]byte, chunkSize+overlap)
	carry := 0

	for {
		n, err := f.Read(buf[carry:])
		if n > 0 {
			if bytes.Contains(buf[:carry+n], []byte(marker)) {
				return true, nil
			}
			carry = copy(buf, tail(buf[:carry+n], overlap))
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}

// affectedStores maps hit LOG paths to store identifiers: the first
// path segment under the log root. Duplicate hits for the same store
// collapse to one entry; order follows the (sorted) hit order. LOG
// files sitting directly in the log root belong to no store and are
// counted but not attributed.
func affectedStores(logRoot string, hits []string) []string {
	seen := make(map[string]bool, len(hits))
	stores := make([]string, 0, len(hits))

	for _, path := range hits {
		rel, err := filepath.Rel(logRoot, path)
		if err != nil {
			continue
		}
		store, _, found := strings.Cut(filepath.ToSlash(rel), "/")
		if !found {
			continue
		}
		if !seen[store] {
			seen[store] = true
			stores = append(stores, store)
		}
	}
	return stores
}
