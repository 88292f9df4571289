package syncdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PostgresMirrorStore stages documents in the sync_entries table so a
// mirror restart does not lose in-flight syncs.
type PostgresMirrorStore struct {
	db *sql.DB
}

func NewPostgresMirrorStore(db *sql.DB) *PostgresMirrorStore {
	return &PostgresMirrorStore{db: db}
}

func (s *PostgresMirrorStore) Put(ctx context.Context, userID string, entry MirrorEntry) error {
	raw, err := json.Marshal(entry.Document)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sync_entries (user_id, device_id, data, synced_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET device_id = EXCLUDED.device_id, data = EXCLUDED.data, synced_at = EXCLUDED.synced_at`
	_, err = s.db.ExecContext(ctx, query, userID, entry.DeviceID, raw, time.UnixMilli(entry.SyncedAt))
	if err != nil {
		return fmt.Errorf("could not stage sync entry: %w", err)
	}
	return nil
}

func (s *PostgresMirrorStore) Get(ctx context.Context, userID string) (*MirrorEntry, error) {
	query := `
		SELECT device_id, data, synced_at
		FROM sync_entries
		WHERE user_id = $1 AND synced_at > $2`
	row := s.db.QueryRowContext(ctx, query, userID, time.Now().Add(-mirrorTTL))

	var entry MirrorEntry
	var raw []byte
	var syncedAt time.Time
	if err := row.Scan(&entry.DeviceID, &raw, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read sync entry: %w", err)
	}
	if err := json.Unmarshal(raw, &entry.Document); err != nil {
		return nil, fmt.Errorf("could not decode staged document: %w", err)
	}
	entry.SyncedAt = syncedAt.UnixMilli()
	return &entry, nil
}

func (s *PostgresMirrorStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sync_entries WHERE synced_at < $1`, time.Now().Add(-mirrorTTL))
	return err
}
