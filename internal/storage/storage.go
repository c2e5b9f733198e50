package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Get for missing or expired keys.
var ErrNotFound = errors.New("key not found")

// KV is a small key-value store for persisted UI flags.
type KV interface {
	// Get returns the value for key, or ErrNotFound if it is missing or expired.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A ttl of zero never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// record is one stored value in the JSON file.
type record struct {
	Value   string     `json:"value"`
	Expires *time.Time `json:"expires,omitempty"` // nil = never
}

// JSONStorage implements KV using a JSON file.
type JSONStorage struct {
	path string
	now  func() time.Time
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path, now: time.Now}
}

// Close implements KV. The file is not held open.
func (s *JSONStorage) Close() error {
	return nil
}

// Get implements KV.
func (s *JSONStorage) Get(_ context.Context, key string) (string, error) {
	records, err := s.read()
	if err != nil {
		return "", err
	}
	r, ok := records[key]
	if !ok || s.expired(r) {
		return "", ErrNotFound
	}
	return r.Value, nil
}

// Set implements KV.
// A corrupt file is replaced rather than blocking the write.
func (s *JSONStorage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	records, err := s.read()
	if err != nil {
		records = map[string]record{}
	}

	r := record{Value: value}
	if ttl != 0 {
		exp := s.now().Add(ttl).UTC()
		r.Expires = &exp
	}
	records[key] = r
	return s.write(records)
}

// Delete implements KV.
func (s *JSONStorage) Delete(_ context.Context, key string) error {
	records, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := records[key]; !ok {
		return nil
	}
	delete(records, key)
	return s.write(records)
}

func (s *JSONStorage) expired(r record) bool {
	return r.Expires != nil && !s.now().Before(*r.Expires)
}

// read loads all records. A missing file is an empty store.
func (s *JSONStorage) read() (map[string]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]record{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	records := map[string]record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return records, nil
}

// write saves all records, creating the directory if it doesn't exist.
func (s *JSONStorage) write(records map[string]record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the KV backend by name. An empty backend means JSON.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStorage(path), nil
	case BackendSQLite:
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// DefaultDir returns the application directory: ~/.config/linkdir
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "linkdir"), nil
}

// FileName returns the KV file name used for backend.
func FileName(backend string) string {
	if backend == BackendSQLite {
		return "state.db"
	}
	return "state.json"
}
