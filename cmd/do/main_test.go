package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChangedSince(t *testing.T) {
	dir := t.TempDir()
	built := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	write := func(name string, mod time.Time) {
		t.Helper()
		path := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(path, []byte("package cmd\n"), 0o644)
		if err != nil {
			t.Fatal(err)
		}
		err = os.Chtimes(path, mod, mod)
		if err != nil {
			t.Fatal(err)
		}
	}

	write("main.go", built.Add(-time.Hour))
	write("cmd/build.go", built.Add(-time.Minute))
	write("README.md", built.Add(time.Hour))
	if changedSince(dir, built) {
		t.Error("changedSince() = true with only non-Go files newer")
	}

	write("cmd/migrate.go", built.Add(time.Second))
	if !changedSince(dir, built) {
		t.Error("changedSince() = false after a nested Go file changed")
	}

	if changedSince(filepath.Join(dir, "missing"), built) {
		t.Error("changedSince() = true for a missing directory")
	}
}
