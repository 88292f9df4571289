package syncdata

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	"github.com/financialos/FinancialOS/internal/storage"
)

// SyncCodePrefix marks a portable sync code (e.g. carried in a QR code).
const SyncCodePrefix = "financial-os-sync:"

var (
	ErrInvalidSyncCode   = errors.New("not a valid sync code")
	ErrMalformedDocument = errors.New("malformed sync document")
)

// Document is the portable snapshot of the whole record store. LastSync is
// Unix milliseconds and monotonic per exporting replica.
type Document struct {
	Transactions []domain.Transaction `json:"transactions"`
	Goals        []domain.Goal        `json:"goals"`
	Assets       []domain.Asset       `json:"assets"`
	Liabilities  []domain.Liability   `json:"liabilities"`
	Categories   []domain.Category    `json:"categories"`
	Niches       []domain.Niche       `json:"niches,omitempty"`
	SideFund     *domain.SideFund     `json:"sideFund,omitempty"`
	Users        []domain.User        `json:"users,omitempty"`
	Sessions     []domain.Session     `json:"sessions,omitempty"`
	Settings     map[string]string    `json:"settings"`
	LastSync     int64                `json:"lastSync"`
}

// Codec turns a store into Documents and back.
type Codec struct {
	store *storage.Store
	now   func() time.Time
}

func NewCodec(store *storage.Store) *Codec {
	return &Codec{store: store, now: time.Now}
}

// SetClock overrides the export timestamp source. Tests only.
func (c *Codec) SetClock(now func() time.Time) { c.now = now }

// Export snapshots every collection, all settings and the auth records into
// one document stamped with the current time.
func (c *Codec) Export() Document {
	snap := c.store.TakeSnapshot()
	doc := Document{
		Transactions: snap.Transactions,
		Goals:        snap.Goals,
		Assets:       snap.Assets,
		Liabilities:  snap.Liabilities,
		Categories:   snap.Categories,
		Niches:       snap.Niches,
		Users:        snap.Users,
		Settings:     snap.Settings,
		LastSync:     c.now().UnixMilli(),
	}
	fund := snap.SideFund
	doc.SideFund = &fund
	if snap.Session != nil {
		doc.Sessions = []domain.Session{*snap.Session}
	}
	return doc
}

// Import restores a document. With merge=false the document replaces every
// local collection verbatim; with merge=true it is reconciled against the
// local state first. An import that would not change anything writes
// nothing.
func (c *Codec) Import(doc Document, merge bool) error {
	next := doc
	if merge {
		local := c.Export()
		next = Merge(local, doc)
		if documentsEqual(local, next) {
			return nil
		}
	}
	return c.store.Restore(documentSnapshot(next))
}

func documentSnapshot(doc Document) storage.Snapshot {
	snap := storage.Snapshot{
		Transactions: doc.Transactions,
		Goals:        doc.Goals,
		Assets:       doc.Assets,
		Liabilities:  doc.Liabilities,
		Categories:   doc.Categories,
		Niches:       doc.Niches,
		Users:        doc.Users,
		Settings:     doc.Settings,
	}
	if doc.SideFund != nil {
		snap.SideFund = *doc.SideFund
	}
	if len(doc.Sessions) > 0 {
		session := doc.Sessions[0]
		snap.Session = &session
	}
	return snap
}

// documentsEqual ignores the export timestamp.
func documentsEqual(a, b Document) bool {
	a.LastSync, b.LastSync = 0, 0
	return reflect.DeepEqual(a, b)
}

// EncodeSyncCode packs a document into the prefixed base64 form used for
// manual transfer between devices.
func EncodeSyncCode(doc Document) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return SyncCodePrefix + base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeSyncCode is the inverse of EncodeSyncCode. Anything that does not
// carry the prefix or decode into a document is rejected without touching
// local state.
func DecodeSyncCode(code string) (*Document, error) {
	if !strings.HasPrefix(code, SyncCodePrefix) {
		return nil, ErrInvalidSyncCode
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(code, SyncCodePrefix))
	if err != nil {
		return nil, ErrInvalidSyncCode
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrMalformedDocument
	}
	return &doc, nil
}

// ParseDocument decodes a raw JSON export, for file-based import.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrMalformedDocument
	}
	return &doc, nil
}
