// Package source reads newline-delimited input, transparently decompressing
// gzip and zstd files.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxLineBytes caps a single record. Log lines beyond this are a pipeline
// problem upstream, not something to buffer unbounded.
const maxLineBytes = 1 << 20

// ReadLines reads every non-blank line from path. "-" reads stdin. Files
// ending in .gz or .zst are decompressed while reading.
func ReadLines(path string) ([]string, error) {
	if path == "-" {
		return ScanLines(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		defer gz.Close()
		return ScanLines(gz)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd input: %w", err)
		}
		defer zr.Close()
		return ScanLines(zr)
	default:
		return ScanLines(f)
	}
}

// ScanLines collects non-blank lines from r. Blank lines are separators, not
// records, and are dropped before counting.
func ScanLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return lines, nil
}
