package storage

import (
	"encoding/json"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

// Snapshot is a point-in-time copy of every collection and setting.
type Snapshot struct {
	Transactions []domain.Transaction
	Goals        []domain.Goal
	Assets       []domain.Asset
	Liabilities  []domain.Liability
	Categories   []domain.Category
	Niches       []domain.Niche
	SideFund     domain.SideFund
	Users        []domain.User
	Session      *domain.Session
	Settings     map[string]string
}

// TakeSnapshot copies the whole store under one read lock.
func (s *Store) TakeSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Transactions: append([]domain.Transaction{}, s.transactions...),
		Goals:        append([]domain.Goal{}, s.goals...),
		Assets:       append([]domain.Asset{}, s.assets...),
		Liabilities:  append([]domain.Liability{}, s.liabilities...),
		Categories:   append([]domain.Category{}, s.categories...),
		Niches:       append([]domain.Niche{}, s.niches...),
		SideFund:     s.sideFund,
		Users:        append([]domain.User{}, s.users...),
		Settings:     make(map[string]string, len(s.settings)),
	}
	if s.session != nil {
		session := *s.session
		snap.Session = &session
	}
	for k, v := range s.settings {
		snap.Settings[k] = v
	}
	return snap
}

// Restore overwrites every collection with the snapshot's contents. Settings
// are applied key-wise on top of the existing ones and the session is only
// replaced when the snapshot carries one. All backend writes happen before
// the in-memory state is swapped.
func (s *Store) Restore(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := []struct {
		key   string
		value interface{}
	}{
		{KeyTransactions, snap.Transactions},
		{KeyGoals, snap.Goals},
		{KeyAssets, snap.Assets},
		{KeyLiabilities, snap.Liabilities},
		{KeyCategories, snap.Categories},
		{KeyNiches, snap.Niches},
		{KeySideFund, snap.SideFund},
		{KeyUsers, snap.Users},
	}
	for _, w := range writes {
		if err := s.persist(w.key, w.value); err != nil {
			return err
		}
	}
	if snap.Session != nil {
		if err := s.persist(KeySession, *snap.Session); err != nil {
			return err
		}
	}
	for k, v := range snap.Settings {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if err := s.backend.Store(SettingsPrefix+k, raw); err != nil {
			return err
		}
	}

	s.transactions = append([]domain.Transaction{}, snap.Transactions...)
	s.goals = append([]domain.Goal{}, snap.Goals...)
	s.assets = append([]domain.Asset{}, snap.Assets...)
	s.liabilities = append([]domain.Liability{}, snap.Liabilities...)
	s.categories = append([]domain.Category{}, snap.Categories...)
	s.niches = append([]domain.Niche{}, snap.Niches...)
	s.sideFund = snap.SideFund
	s.users = append([]domain.User{}, snap.Users...)
	if snap.Session != nil {
		session := *snap.Session
		s.session = &session
	}
	for k, v := range snap.Settings {
		s.settings[k] = v
	}

	s.notify(KeyTransactions)
	return nil
}
