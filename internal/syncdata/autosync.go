package syncdata

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/financialos/FinancialOS/internal/storage"
)

// AutoSyncer pushes local state to a mirror and folds staged remote state
// back in. Each tick pulls first, merges anything another device staged,
// then pushes when the local state moved since the last push. A remote
// mirror that fails mid-tick is papered over by the local staging area so
// the cycle always lands somewhere.
type AutoSyncer struct {
	userID   string
	deviceID string
	codec    *Codec
	remote   Mirror
	local    *LocalMirror

	lastPushed  Document
	everPushed  bool
	lastApplied int64
}

// NewAutoSyncer wires a syncer for one user's store. remote may be nil;
// everything then goes through the local staging area.
func NewAutoSyncer(store *storage.Store, local *LocalMirror, remote Mirror, userID string) *AutoSyncer {
	return &AutoSyncer{
		userID:   userID,
		deviceID: uuid.New().String(),
		codec:    NewCodec(store),
		remote:   remote,
		local:    local,
	}
}

func (s *AutoSyncer) DeviceID() string { return s.deviceID }

// Run polls until the context is cancelled.
func (s *AutoSyncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				log.Printf("auto sync: %v", err)
			}
		}
	}
}

// SyncOnce runs one pull-merge-push cycle.
func (s *AutoSyncer) SyncOnce(ctx context.Context) error {
	entry, err := s.pull(ctx)
	if err != nil {
		return err
	}
	if entry != nil && entry.DeviceID != s.deviceID && entry.Document.LastSync > s.lastApplied {
		if err := s.codec.Import(entry.Document, true); err != nil {
			return err
		}
		s.lastApplied = entry.Document.LastSync
	}

	doc := s.codec.Export()
	if s.everPushed && documentsEqual(doc, s.lastPushed) {
		return nil
	}
	if err := s.push(ctx, doc); err != nil {
		return err
	}
	s.lastPushed = doc
	s.everPushed = true
	return nil
}

func (s *AutoSyncer) pull(ctx context.Context) (*MirrorEntry, error) {
	if s.remote != nil {
		entry, err := s.remote.Pull(ctx, s.userID)
		if err == nil {
			return entry, nil
		}
		log.Printf("auto sync: remote pull failed, using local staging: %v", err)
	}
	return s.local.Pull(ctx, s.userID)
}

func (s *AutoSyncer) push(ctx context.Context, doc Document) error {
	if s.remote != nil {
		err := s.remote.Push(ctx, s.userID, s.deviceID, doc)
		if err == nil {
			return nil
		}
		log.Printf("auto sync: remote push failed, staging locally: %v", err)
	}
	return s.local.Push(ctx, s.userID, s.deviceID, doc)
}
