package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var sampleLines = []string{
	`{"IP":"1.1.1.1"}`,
	`{"IP":"2.2.2.2"}`,
	`{"IP":"1.1.1.1"}`,
}

func sampleContent() string {
	// Blank lines and a trailing newline must not produce records.
	return sampleLines[0] + "\n\n" + sampleLines[1] + "\n   \n" + sampleLines[2] + "\n"
}

func assertSampleLines(t *testing.T, got []string) {
	t.Helper()

	if len(got) != len(sampleLines) {
		t.Fatalf("got %d lines, want %d", len(got), len(sampleLines))
	}
	for i, want := range sampleLines {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestReadLinesPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ndjson")
	if err := os.WriteFile(path, []byte(sampleContent()), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() failed: %v", err)
	}
	assertSampleLines(t, lines)
}

func TestReadLinesGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ndjson.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleContent())); err != nil {
		t.Fatalf("failed to write gzip fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() failed: %v", err)
	}
	assertSampleLines(t, lines)
}

func TestReadLinesZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ndjson.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("failed to create zstd writer: %v", err)
	}
	if _, err := zw.Write([]byte(sampleContent())); err != nil {
		t.Fatalf("failed to write zstd fixture: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zstd writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() failed: %v", err)
	}
	assertSampleLines(t, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, err := ReadLines(filepath.Join(t.TempDir(), "nope.ndjson")); err == nil {
		t.Error("ReadLines() on a missing file succeeded, want error")
	}
}

func TestScanLines(t *testing.T) {
	lines, err := ScanLines(strings.NewReader(sampleContent()))
	if err != nil {
		t.Fatalf("ScanLines() failed: %v", err)
	}
	assertSampleLines(t, lines)
}

func TestScanLinesEmpty(t *testing.T) {
	lines, err := ScanLines(strings.NewReader("\n\n  \n"))
	if err != nil {
		t.Fatalf("ScanLines() failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got %d lines from blank input, want 0", len(lines))
	}
}
