package syncdata

import (
	"context"
	"sync"
	"time"
)

// Staged documents older than this are treated as gone.
const mirrorTTL = time.Hour

// MirrorStore is the server-side keyspace behind the sync endpoint. One
// entry per user, newest upload wins, expired entries read as absent.
type MirrorStore interface {
	Put(ctx context.Context, userID string, entry MirrorEntry) error
	Get(ctx context.Context, userID string) (*MirrorEntry, error)
	DeleteExpired(ctx context.Context) error
}

type memoryMirrorStore struct {
	mu      sync.RWMutex
	entries map[string]MirrorEntry
	done    chan struct{}
}

// NewMemoryMirrorStore keeps staged documents in process memory and
// sweeps expired ones in the background until Close.
func NewMemoryMirrorStore(cleanupInterval time.Duration) *memoryMirrorStore {
	s := &memoryMirrorStore{
		entries: make(map[string]MirrorEntry),
		done:    make(chan struct{}),
	}
	go s.cleanupLoop(cleanupInterval)
	return s
}

func (s *memoryMirrorStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}

func (s *memoryMirrorStore) Put(ctx context.Context, userID string, entry MirrorEntry) error {
	s.mu.Lock()
	s.entries["sync_"+userID] = entry
	s.mu.Unlock()
	return nil
}

func (s *memoryMirrorStore) Get(ctx context.Context, userID string) (*MirrorEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries["sync_"+userID]
	s.mu.RUnlock()
	if !ok || time.Since(time.UnixMilli(entry.SyncedAt)) > mirrorTTL {
		return nil, nil
	}
	out := entry
	return &out, nil
}

func (s *memoryMirrorStore) DeleteExpired(ctx context.Context) error {
	cutoff := time.Now().Add(-mirrorTTL).UnixMilli()
	s.mu.Lock()
	for key, entry := range s.entries {
		if entry.SyncedAt < cutoff {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *memoryMirrorStore) Close() {
	close(s.done)
}
