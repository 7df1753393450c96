package extractor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/xschemadev/urlfetch/logger"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineSize       = 1024 * 1024
)

var (
	ErrInputNotFound   = errors.New("input file not found")
	ErrInputUnreadable = errors.New("input file unreadable")
)

// Options tunes how lines are turned into a URL list.
type Options struct {
	// Unique keeps only the first occurrence of each raw URL.
	Unique bool
}

// Scan streams the file at path and extracts URLs line by line.
// Open and read failures wrap ErrInputNotFound or ErrInputUnreadable.
func (e *Extractor) Scan(ctx context.Context, path string, opts Options) ([]Found, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputUnreadable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputUnreadable, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputUnreadable, path, err)
	}
	defer f.Close()

	e.p.Verbosef("Reading: %s", path)
	logger.Debug("scanning input", "file", path, "bytes", info.Size())

	found, err := e.ScanReader(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return found, nil
}

// ScanReader extracts URLs from every line of r, in order.
func (e *Extractor) ScanReader(ctx context.Context, r io.Reader, opts Options) ([]Found, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineSize)

	var seen map[string]struct{}
	if opts.Unique {
		seen = make(map[string]struct{})
	}

	var found []Found
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		for _, u := range e.Extract(scanner.Text()) {
			if seen != nil {
				if _, dup := seen[u]; dup {
					logger.Debug("duplicate url skipped", "url", u, "line", lineNo)
					continue
				}
				seen[u] = struct{}{}
			}
			found = append(found, Found{URL: u, Line: lineNo})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInputUnreadable, lineNo+1, err)
	}

	logger.Debug("scan complete", "lines", lineNo, "urls", len(found))
	return found, nil
}

// URLs returns the bare URL strings of found, in order.
func URLs(found []Found) []string {
	urls := make([]string, len(found))
	for i, f := range found {
		urls[i] = f.URL
	}
	return urls
}
