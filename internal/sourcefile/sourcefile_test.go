package sourcefile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book-0.txt")
	want := "Alpha.\n\nBeta.\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if string(f.Data) != want {
		t.Errorf("Data = %q, want %q", f.Data, want)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty-0.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if len(f.Data) != 0 {
		t.Errorf("Data = %q, want empty", f.Data)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
