package syncdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/financialos/FinancialOS/internal/storage"
)

// MirrorEntry is one user's staged document plus the metadata the mirror
// records about who uploaded it and when.
type MirrorEntry struct {
	Document Document `json:"data"`
	DeviceID string   `json:"deviceId"`
	SyncedAt int64    `json:"syncedAt"`
}

// Mirror is a temporary server-side staging area for sync documents.
// Pull returns nil without error when nothing is staged.
type Mirror interface {
	Push(ctx context.Context, userID, deviceID string, doc Document) error
	Pull(ctx context.Context, userID string) (*MirrorEntry, error)
}

type pushRequest struct {
	UserID   string   `json:"userId"`
	DeviceID string   `json:"deviceId"`
	Data     Document `json:"data"`
}

type pullResponse struct {
	Data *MirrorEntry `json:"data"`
}

// HTTPMirror talks to a remote mirror endpoint. Transient failures are
// retried with exponential backoff capped well below the poll interval so
// a slow mirror cannot pile up sync ticks.
type HTTPMirror struct {
	baseURL string
	client  *http.Client
}

func NewHTTPMirror(baseURL string) *HTTPMirror {
	return &HTTPMirror{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *HTTPMirror) retryPolicy(ctx context.Context) backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 3 * time.Second
	return backoff.WithContext(policy, ctx)
}

func (m *HTTPMirror) Push(ctx context.Context, userID, deviceID string, doc Document) error {
	body, err := json.Marshal(pushRequest{UserID: userID, DeviceID: deviceID, Data: doc})
	if err != nil {
		return err
	}
	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/sync", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := m.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("mirror push: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("mirror push: status %d", resp.StatusCode))
		}
		return nil
	}, m.retryPolicy(ctx))
}

func (m *HTTPMirror) Pull(ctx context.Context, userID string) (*MirrorEntry, error) {
	var entry *MirrorEntry
	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/api/sync?userId="+userID, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := m.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("mirror pull: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(fmt.Errorf("mirror pull: status %d", resp.StatusCode))
		}
		var out pullResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(err)
		}
		entry = out.Data
		return nil
	}, m.retryPolicy(ctx))
	if err != nil {
		return nil, err
	}
	return entry, nil
}

const localStagingKey = "cloud_sync"

// LocalMirror stages documents in the local backend under a reserved key.
// It stands in when no remote mirror is configured or reachable, so two
// apps sharing one storage file still converge.
type LocalMirror struct {
	backend storage.Backend
}

func NewLocalMirror(backend storage.Backend) *LocalMirror {
	return &LocalMirror{backend: backend}
}

func (m *LocalMirror) Push(ctx context.Context, userID, deviceID string, doc Document) error {
	entry := MirrorEntry{Document: doc, DeviceID: deviceID, SyncedAt: time.Now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return m.backend.Store(localStagingKey+"_"+userID, raw)
}

func (m *LocalMirror) Pull(ctx context.Context, userID string) (*MirrorEntry, error) {
	raw, err := m.backend.Load(localStagingKey + "_" + userID)
	if err != nil || raw == nil {
		return nil, err
	}
	var entry MirrorEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
