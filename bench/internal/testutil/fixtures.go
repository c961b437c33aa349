// Package testutil provides shared fixture writers for the bench test
// packages. It does not import bench so that package bench's own tests can
// use it.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
)

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteJSON encodes v as JSON into dir/name. When compress is set the file is
// a snappy framed stream.
func WriteJSON(t *testing.T, dir, name string, v any, compress bool) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if !compress {
		if _, err := file.Write(data); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		return path
	}
	w := snappy.NewBufferedWriter(file)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close snappy writer %s: %v", path, err)
	}
	return path
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }
