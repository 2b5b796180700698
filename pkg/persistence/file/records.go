package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

var errInvalidID = errors.New("invalid record id")

type records[T any] struct {
	root string
	dir  string
	mu   *sync.RWMutex
}

func newRecords[T any](root, dir string, mu *sync.RWMutex) *records[T] {
	return &records[T]{root: root, dir: dir, mu: mu}
}

func (r *records[T]) filePath(id string) string {
	return filepath.Clean(path.Join(r.root, r.dir, id+".json"))
}

// validID reports whether id names a single file inside the collection directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/\\\x00") && !strings.Contains(id, "..")
}

// read returns nil without error when the record does not exist. Ids that
// cannot name a record read as missing. Callers must hold the lock.
func (r *records[T]) read(id string) (*T, error) {
	if !validID(id) {
		return nil, nil
	}

	body, err := os.ReadFile(r.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read %s %s: %w", r.dir, id, err)
	}

	var record T

	err = json.Unmarshal(body, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s %s: %w", r.dir, id, err)
	}

	return &record, nil
}

// write replaces the record. Callers must hold the lock.
func (r *records[T]) write(id string, record *T) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", errInvalidID, id)
	}

	err := os.MkdirAll(path.Join(r.root, r.dir), 0750)
	if err != nil {
		return fmt.Errorf("failed to create %s directory: %w", r.dir, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", r.dir, id, err)
	}

	return os.WriteFile(r.filePath(id), data, 0600)
}

// all returns every record in the collection. Callers must hold the lock.
func (r *records[T]) all() ([]*T, error) {
	root := os.DirFS(path.Join(r.root, r.dir))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", r.dir, err)
	}

	result := make([]*T, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		record, err := r.read(strings.TrimSuffix(file, ".json"))
		if err != nil {
			return nil, err
		}

		if record != nil {
			result = append(result, record)
		}
	}

	return result, nil
}
