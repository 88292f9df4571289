package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFileBackend persists the whole key space as a single JSON document on
// disk. Every write rewrites the file through a rename so a crash mid-write
// leaves the previous version intact.
type JSONFileBackend struct {
	mu       sync.Mutex
	filename string
	data     map[string]json.RawMessage
}

func NewJSONFileBackend(filename string) (*JSONFileBackend, error) {
	b := &JSONFileBackend{
		filename: filename,
		data:     make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &b.data); err != nil {
			return nil, fmt.Errorf("store file %s is corrupt: %w", filename, err)
		}
	}
	return b, nil
}

func (b *JSONFileBackend) Load(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (b *JSONFileBackend) Store(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = json.RawMessage(data)
	return b.flush()
}

func (b *JSONFileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return b.flush()
}

func (b *JSONFileBackend) Keys() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (b *JSONFileBackend) Close() error { return nil }

func (b *JSONFileBackend) flush() error {
	raw, err := json.Marshal(b.data)
	if err != nil {
		return err
	}
	tmp := b.filename + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		// Parent directory may not exist yet on first write.
		if mkErr := os.MkdirAll(filepath.Dir(b.filename), 0755); mkErr != nil {
			return err
		}
		if err := os.WriteFile(tmp, raw, 0644); err != nil {
			return err
		}
	}
	return os.Rename(tmp, b.filename)
}
