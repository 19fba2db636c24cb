package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]string{" a", "b "}, strings.TrimSpace)
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("Map returned %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("Filter returned %v", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"gzip", "zstd"}, "zstd") {
		t.Errorf("expected zstd to be found")
	}
	if Contains([]string{"gzip"}, "lz4") {
		t.Errorf("did not expect lz4 to be found")
	}
}

func TestGenerateUniqueHash(t *testing.T) {
	a, b := GenerateUniqueHash(), GenerateUniqueHash()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct hashes")
	}
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FileSHA256(path)
	if err != nil {
		t.Fatalf("FileSHA256 error: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	if _, err := FileSHA256(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
