package fsutil

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory()
	if err := m.WriteFile("a/b/c.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := m.ReadFile("a/b/c.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want hello", data)
	}
	// Parent directories exist implicitly.
	for _, dir := range []string{"a", "a/b"} {
		if !m.Exists(dir) {
			t.Errorf("dir %q does not exist", dir)
		}
	}
}

func TestMemoryReadMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.ReadFile("nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryReadReturnsCopy(t *testing.T) {
	m := NewMemory()
	m.WriteFile("f", []byte("abc"), 0o644)
	data, _ := m.ReadFile("f")
	data[0] = 'x'
	again, _ := m.ReadFile("f")
	if string(again) != "abc" {
		t.Errorf("stored data mutated: %q", again)
	}
}

func TestMemoryRenameTree(t *testing.T) {
	m := NewMemory()
	m.WriteFile("tmp/sub/a.txt", []byte("a"), 0o644)
	m.WriteFile("tmp/b.txt", []byte("b"), 0o644)

	if err := m.Rename("tmp", "final"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if m.Exists("tmp") || m.Exists("tmp/b.txt") {
		t.Error("old tree still present after rename")
	}
	data, err := m.ReadFile("final/sub/a.txt")
	if err != nil || string(data) != "a" {
		t.Errorf("final/sub/a.txt = %q, %v; want a, nil", data, err)
	}
}

func TestMemoryRenameMissing(t *testing.T) {
	m := NewMemory()
	if err := m.Rename("absent", "anywhere"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryReadDir(t *testing.T) {
	m := NewMemory()
	m.WriteFile("root/a.txt", nil, 0o644)
	m.WriteFile("root/sub/b.txt", nil, 0o644)

	entries, err := m.ReadDir("root")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name() != "a.txt" || entries[0].IsDir() {
		t.Errorf("entry 0 = %q dir=%v, want a.txt file", entries[0].Name(), entries[0].IsDir())
	}
	if entries[1].Name() != "sub" || !entries[1].IsDir() {
		t.Errorf("entry 1 = %q dir=%v, want sub dir", entries[1].Name(), entries[1].IsDir())
	}
}

func TestMemoryRemoveAll(t *testing.T) {
	m := NewMemory()
	m.WriteFile("x/one", nil, 0o644)
	m.WriteFile("x/deep/two", nil, 0o644)
	m.WriteFile("y/keep", nil, 0o644)

	if err := m.RemoveAll("x"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if m.Exists("x") || m.Exists("x/deep/two") {
		t.Error("removed tree still present")
	}
	if !m.Exists("y/keep") {
		t.Error("sibling tree was removed")
	}
}

func TestMemoryStat(t *testing.T) {
	m := NewMemory()
	m.WriteFile("d/f.bin", []byte{1, 2, 3}, 0o644)

	fi, err := m.Stat("d/f.bin")
	if err != nil {
		t.Fatalf("Stat file: %v", err)
	}
	if fi.Size() != 3 || fi.IsDir() {
		t.Errorf("file stat = size %d dir %v, want size 3 file", fi.Size(), fi.IsDir())
	}

	di, err := m.Stat("d")
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if !di.IsDir() {
		t.Error("directory stat reports a file")
	}
}
