package syncdata

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	"github.com/financialos/FinancialOS/internal/storage"
)

func testRespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func testRespondError(w http.ResponseWriter, status int, message string) {
	testRespondJSON(w, status, map[string]string{"status": "error", "message": message})
}

func newMirrorServer(store MirrorStore) *httptest.Server {
	handler := NewMirrorHandler(store, testRespondJSON, testRespondError)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sync", handler.Push)
	mux.HandleFunc("GET /api/sync", handler.Pull)
	return httptest.NewServer(mux)
}

func TestMirrorHandler_PushThenPull(t *testing.T) {
	mirror := NewMemoryMirrorStore(time.Minute)
	defer mirror.Close()
	server := newMirrorServer(mirror)
	defer server.Close()

	doc := Document{
		Transactions: []domain.Transaction{{ID: "t1", Type: domain.TypeExpense, Amount: 10}},
		LastSync:     time.Now().UnixMilli(),
	}
	body, err := json.Marshal(pushRequest{UserID: "u1", DeviceID: "dev-a", Data: doc})
	assert.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/sync", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/sync?userId=u1")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out pullResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotNil(t, out.Data)
	assert.Equal(t, "dev-a", out.Data.DeviceID)
	assert.Len(t, out.Data.Document.Transactions, 1)
}

func TestMirrorHandler_PullUnknownUserReturnsNull(t *testing.T) {
	mirror := NewMemoryMirrorStore(time.Minute)
	defer mirror.Close()
	server := newMirrorServer(mirror)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/sync?userId=nobody")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out pullResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Nil(t, out.Data)
}

func TestMirrorHandler_PushWithoutUserIDRejected(t *testing.T) {
	mirror := NewMemoryMirrorStore(time.Minute)
	defer mirror.Close()
	server := newMirrorServer(mirror)
	defer server.Close()

	body, _ := json.Marshal(pushRequest{DeviceID: "dev-a"})
	resp, err := http.Post(server.URL+"/api/sync", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMemoryMirrorStore_ExpiredEntryReadsAsAbsent(t *testing.T) {
	mirror := NewMemoryMirrorStore(time.Minute)
	defer mirror.Close()

	stale := MirrorEntry{
		DeviceID: "dev-a",
		SyncedAt: time.Now().Add(-2 * time.Hour).UnixMilli(),
	}
	assert.NoError(t, mirror.Put(context.Background(), "u1", stale))

	entry, err := mirror.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestHTTPMirror_RoundTrip(t *testing.T) {
	store := NewMemoryMirrorStore(time.Minute)
	defer store.Close()
	server := newMirrorServer(store)
	defer server.Close()

	mirror := NewHTTPMirror(server.URL)
	doc := Document{LastSync: time.Now().UnixMilli(), Settings: map[string]string{"theme": "dark"}}
	assert.NoError(t, mirror.Push(context.Background(), "u1", "dev-a", doc))

	entry, err := mirror.Pull(context.Background(), "u1")
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, "dark", entry.Document.Settings["theme"])
}

func TestAutoSyncer_TwoDevicesConvergeThroughMirror(t *testing.T) {
	mirrorStore := NewMemoryMirrorStore(time.Minute)
	defer mirrorStore.Close()
	server := newMirrorServer(mirrorStore)
	defer server.Close()
	mirror := NewHTTPMirror(server.URL)

	backendA := storage.NewMemoryBackend()
	storeA, err := storage.NewStore(backendA)
	assert.NoError(t, err)
	backendB := storage.NewMemoryBackend()
	storeB, err := storage.NewStore(backendB)
	assert.NoError(t, err)

	assert.NoError(t, storeA.AddTransaction(domain.Transaction{
		ID: "t1", Type: domain.TypeExpense, Amount: 99, Category: "personal",
	}))

	syncA := NewAutoSyncer(storeA, NewLocalMirror(backendA), mirror, "u1")
	syncB := NewAutoSyncer(storeB, NewLocalMirror(backendB), mirror, "u1")

	assert.NoError(t, syncA.SyncOnce(context.Background()))
	assert.NoError(t, syncB.SyncOnce(context.Background()))

	_, ok := storeB.GetTransaction("t1")
	assert.True(t, ok)
}

func TestAutoSyncer_IgnoresOwnEcho(t *testing.T) {
	mirrorStore := NewMemoryMirrorStore(time.Minute)
	defer mirrorStore.Close()
	server := newMirrorServer(mirrorStore)
	defer server.Close()
	mirror := NewHTTPMirror(server.URL)

	backend := storage.NewMemoryBackend()
	store, err := storage.NewStore(backend)
	assert.NoError(t, err)
	assert.NoError(t, store.AddTransaction(domain.Transaction{
		ID: "t1", Type: domain.TypeExpense, Amount: 10, Category: "personal",
	}))

	syncer := NewAutoSyncer(store, NewLocalMirror(backend), mirror, "u1")
	assert.NoError(t, syncer.SyncOnce(context.Background()))

	before := store.TakeSnapshot()
	assert.NoError(t, syncer.SyncOnce(context.Background()))
	assert.Equal(t, before, store.TakeSnapshot())
}

func TestAutoSyncer_FallsBackToLocalStaging(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store, err := storage.NewStore(backend)
	assert.NoError(t, err)
	assert.NoError(t, store.AddTransaction(domain.Transaction{
		ID: "t1", Type: domain.TypeExpense, Amount: 10, Category: "personal",
	}))

	local := NewLocalMirror(backend)
	syncer := NewAutoSyncer(store, local, nil, "u1")
	assert.NoError(t, syncer.SyncOnce(context.Background()))

	entry, err := local.Pull(context.Background(), "u1")
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Len(t, entry.Document.Transactions, 1)
}
