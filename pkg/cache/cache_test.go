package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheMissThenHit(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	key := Key("access.ndjson", "field", "IP", "skip", 25, "yaml")

	if _, ok := c.Get(key); ok {
		t.Fatal("Get() hit before Set()")
	}

	want := []byte("input: access.ndjson\n")
	if err := c.Set(key, want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() missed after Set()")
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	key := Key("access.ndjson", "field", "IP", "skip", 25, "yaml")
	if err := c.Set(key, []byte("stale")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Error("Get() hit after TTL expired")
	}
}

func TestKeyVariesWithParameters(t *testing.T) {
	base := Key("access.ndjson", "field", "IP", "skip", 25, "yaml")

	variants := []string{
		Key("other.ndjson", "field", "IP", "skip", 25, "yaml"),
		Key("access.ndjson", "raw", "IP", "skip", 25, "yaml"),
		Key("access.ndjson", "field", "UA", "skip", 25, "yaml"),
		Key("access.ndjson", "field", "IP", "abort", 25, "yaml"),
		Key("access.ndjson", "field", "IP", "skip", 10, "yaml"),
		Key("access.ndjson", "field", "IP", "skip", 25, "table"),
	}
	for i, variant := range variants {
		if variant == base {
			t.Errorf("variant %d produced the same key as the base parameters", i)
		}
	}

	if again := Key("access.ndjson", "field", "IP", "skip", 25, "yaml"); again != base {
		t.Error("Key() is not stable for identical parameters")
	}
}

func TestKeyChangesWhenInputChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.ndjson")
	if err := os.WriteFile(path, []byte(`{"IP":"1.1.1.1"}`+"\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	before := Key(path, "field", "IP", "skip", 25, "yaml")

	// Grow the file; size alone must invalidate the key even if mtime
	// granularity is coarse.
	if err := os.WriteFile(path, []byte(`{"IP":"1.1.1.1"}`+"\n"+`{"IP":"2.2.2.2"}`+"\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}

	if after := Key(path, "field", "IP", "skip", 25, "yaml"); after == before {
		t.Error("Key() unchanged after the input file changed")
	}
}
