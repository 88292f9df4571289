package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// ChangeEvent tells subscribers which persistence key was mutated.
type ChangeEvent struct {
	Key string
}

// Store is the record store: every collection lives in memory guarded by a
// RWMutex and is mirrored to the backend on every mutation. The backend
// write happens before the in-memory swap, so a failed write never leaves
// the two views disagreeing. Construct one per process (or per test) and
// inject it; there is no package-level state.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	now     func() time.Time

	transactions []domain.Transaction
	goals        []domain.Goal
	assets       []domain.Asset
	liabilities  []domain.Liability
	categories   []domain.Category
	niches       []domain.Niche
	sideFund     domain.SideFund
	users        []domain.User
	session      *domain.Session
	settings     map[string]string

	subMu sync.Mutex
	subs  []chan ChangeEvent
}

// NewStore loads all collections from the backend. An empty store gets the
// default category set and side-fund target seeded.
func NewStore(backend Backend) (*Store, error) {
	s := &Store{
		backend:  backend,
		now:      time.Now,
		settings: make(map[string]string),
		sideFund: domain.SideFund{TargetAmount: domain.DefaultSideFundTarget},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	loaders := map[string]interface{}{
		KeyTransactions: &s.transactions,
		KeyGoals:        &s.goals,
		KeyAssets:       &s.assets,
		KeyLiabilities:  &s.liabilities,
		KeyCategories:   &s.categories,
		KeyNiches:       &s.niches,
		KeySideFund:     &s.sideFund,
		KeyUsers:        &s.users,
	}
	for key, target := range loaders {
		raw, err := s.backend.Load(key)
		if err != nil {
			return fmt.Errorf("could not load %q: %w", key, err)
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("collection %q is corrupt: %w", key, err)
		}
	}

	raw, err := s.backend.Load(KeySession)
	if err != nil {
		return fmt.Errorf("could not load %q: %w", KeySession, err)
	}
	if raw != nil {
		var session domain.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return fmt.Errorf("collection %q is corrupt: %w", KeySession, err)
		}
		s.session = &session
	}

	keys, err := s.backend.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, SettingsPrefix) {
			continue
		}
		raw, err := s.backend.Load(key)
		if err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("setting %q is corrupt: %w", key, err)
		}
		s.settings[strings.TrimPrefix(key, SettingsPrefix)] = value
	}

	if len(s.categories) == 0 {
		s.categories = defaultCategories(s.now())
		if err := s.persist(KeyCategories, s.categories); err != nil {
			return err
		}
	}
	return nil
}

func defaultCategories(now time.Time) []domain.Category {
	mk := func(id, name, categoryType, color string) domain.Category {
		return domain.Category{ID: id, Name: name, Type: categoryType, Color: color, CreatedAt: now, UpdatedAt: now}
	}
	return []domain.Category{
		mk("shopify", "Shopify", domain.TypeIncome, "#10b981"),
		mk("mentoring", "Mentoring", domain.TypeIncome, "#3b82f6"),
		mk("wood", "Wood", domain.TypeIncome, "#8b5cf6"),
		mk("metal", "Metal", domain.TypeIncome, "#f59e0b"),
		mk("other-income", "Other", domain.TypeIncome, "#6b7280"),
		mk("business", "Business", domain.TypeExpense, "#ef4444"),
		mk("personal", "Personal", domain.TypeExpense, "#ec4899"),
		mk("rent", "Rent", domain.TypeExpense, "#f97316"),
		mk("utilities", "Utilities", domain.TypeExpense, "#14b8a6"),
		mk("transport", "Transport", domain.TypeExpense, "#6366f1"),
		mk("other-expense", "Other", domain.TypeExpense, "#6b7280"),
	}
}

// SetClock overrides the timestamp source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) persist(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.backend.Store(key, raw); err != nil {
		return fmt.Errorf("storage write for %q failed: %w", key, err)
	}
	return nil
}

// Subscribe registers a channel for change notifications. Delivery is
// best-effort: a full channel is skipped, never blocked on.
func (s *Store) Subscribe() chan ChangeEvent {
	ch := make(chan ChangeEvent, 16)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) Unsubscribe(ch chan ChangeEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (s *Store) notify(key string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		select {
		case sub <- ChangeEvent{Key: key}:
		default:
		}
	}
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// --- Transactions ---

func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Transaction{}, s.transactions...)
}

func (s *Store) GetTransaction(id string) (*domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			t := s.transactions[i]
			return &t, true
		}
	}
	return nil, false
}

func (s *Store) AddTransaction(t domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return ledgerErrors.NewValidationError("Transaction id is required")
	}
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	next := append(append([]domain.Transaction{}, s.transactions...), t)
	if err := s.persist(KeyTransactions, next); err != nil {
		return err
	}
	s.transactions = next
	s.notify(KeyTransactions)
	return nil
}

func (s *Store) UpdateTransaction(t domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Transaction{}, s.transactions...)
	for i := range next {
		if next[i].ID == t.ID {
			t.CreatedAt = next[i].CreatedAt
			t.UpdatedAt = s.now()
			next[i] = t
			if err := s.persist(KeyTransactions, next); err != nil {
				return err
			}
			s.transactions = next
			s.notify(KeyTransactions)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Transaction, 0, len(s.transactions))
	found := false
	for _, t := range s.transactions {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyTransactions, next); err != nil {
		return err
	}
	s.transactions = next
	s.notify(KeyTransactions)
	return nil
}

func (s *Store) TransactionsInRange(start, end time.Time) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TransactionTotal sums amounts for a type, optionally filtered by status.
// The sum is carried in decimals so long ledgers do not accumulate float
// error.
func (s *Store) TransactionTotal(txType, status string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range s.transactions {
		if t.Type != txType {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(t.Amount))
	}
	f, _ := sum.Float64()
	return f
}

// --- Goals ---

func (s *Store) Goals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Goal{}, s.goals...)
}

func (s *Store) GetGoal(id string) (*domain.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			g := s.goals[i]
			return &g, true
		}
	}
	return nil, false
}

func (s *Store) AddGoal(g domain.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		return ledgerErrors.NewValidationError("Goal id is required")
	}
	for i := range s.goals {
		if s.goals[i].ID == g.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	next := append(append([]domain.Goal{}, s.goals...), g)
	if err := s.persist(KeyGoals, next); err != nil {
		return err
	}
	s.goals = next
	s.notify(KeyGoals)
	return nil
}

func (s *Store) UpdateGoal(g domain.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Goal{}, s.goals...)
	for i := range next {
		if next[i].ID == g.ID {
			g.CreatedAt = next[i].CreatedAt
			g.UpdatedAt = s.now()
			next[i] = g
			if err := s.persist(KeyGoals, next); err != nil {
				return err
			}
			s.goals = next
			s.notify(KeyGoals)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Goal, 0, len(s.goals))
	found := false
	for _, g := range s.goals {
		if g.ID == id {
			found = true
			continue
		}
		next = append(next, g)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyGoals, next); err != nil {
		return err
	}
	s.goals = next
	s.notify(KeyGoals)
	return nil
}

// --- Assets ---

func (s *Store) Assets() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Asset{}, s.assets...)
}

func (s *Store) GetAsset(id string) (*domain.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.assets {
		if s.assets[i].ID == id {
			a := s.assets[i]
			return &a, true
		}
	}
	return nil, false
}

func (s *Store) AddAsset(a domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		return ledgerErrors.NewValidationError("Asset id is required")
	}
	for i := range s.assets {
		if s.assets[i].ID == a.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	next := append(append([]domain.Asset{}, s.assets...), a)
	if err := s.persist(KeyAssets, next); err != nil {
		return err
	}
	s.assets = next
	s.notify(KeyAssets)
	return nil
}

func (s *Store) UpdateAsset(a domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Asset{}, s.assets...)
	for i := range next {
		if next[i].ID == a.ID {
			a.CreatedAt = next[i].CreatedAt
			a.UpdatedAt = s.now()
			next[i] = a
			if err := s.persist(KeyAssets, next); err != nil {
				return err
			}
			s.assets = next
			s.notify(KeyAssets)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) DeleteAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Asset, 0, len(s.assets))
	found := false
	for _, a := range s.assets {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyAssets, next); err != nil {
		return err
	}
	s.assets = next
	s.notify(KeyAssets)
	return nil
}

// AssetTotal sums normalized values, optionally restricted to one type.
func (s *Store) AssetTotal(assetType domain.AssetType) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	for _, a := range s.assets {
		if assetType != "" && a.Type != assetType {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(a.Value))
	}
	f, _ := sum.Float64()
	return f
}

// --- Liabilities ---

func (s *Store) Liabilities() []domain.Liability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Liability{}, s.liabilities...)
}

func (s *Store) GetLiability(id string) (*domain.Liability, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.liabilities {
		if s.liabilities[i].ID == id {
			l := s.liabilities[i]
			return &l, true
		}
	}
	return nil, false
}

func (s *Store) AddLiability(l domain.Liability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		return ledgerErrors.NewValidationError("Liability id is required")
	}
	for i := range s.liabilities {
		if s.liabilities[i].ID == l.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	next := append(append([]domain.Liability{}, s.liabilities...), l)
	if err := s.persist(KeyLiabilities, next); err != nil {
		return err
	}
	s.liabilities = next
	s.notify(KeyLiabilities)
	return nil
}

func (s *Store) UpdateLiability(l domain.Liability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Liability{}, s.liabilities...)
	for i := range next {
		if next[i].ID == l.ID {
			l.CreatedAt = next[i].CreatedAt
			l.UpdatedAt = s.now()
			next[i] = l
			if err := s.persist(KeyLiabilities, next); err != nil {
				return err
			}
			s.liabilities = next
			s.notify(KeyLiabilities)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) DeleteLiability(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Liability, 0, len(s.liabilities))
	found := false
	for _, l := range s.liabilities {
		if l.ID == id {
			found = true
			continue
		}
		next = append(next, l)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyLiabilities, next); err != nil {
		return err
	}
	s.liabilities = next
	s.notify(KeyLiabilities)
	return nil
}

func (s *Store) LiabilityTotals() (total, paid, remaining float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totalD, paidD := decimal.Zero, decimal.Zero
	for _, l := range s.liabilities {
		totalD = totalD.Add(decimal.NewFromFloat(l.TotalAmount))
		paidD = paidD.Add(decimal.NewFromFloat(l.PaidAmount))
	}
	total, _ = totalD.Float64()
	paid, _ = paidD.Float64()
	remaining, _ = totalD.Sub(paidD).Float64()
	if remaining < 0 {
		remaining = 0
	}
	return total, paid, remaining
}

// --- Categories ---

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category{}, s.categories...)
}

func (s *Store) CategoriesByType(categoryType string) []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Category
	for _, c := range s.categories {
		if c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) GetCategory(id string) (*domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c, true
		}
	}
	return nil, false
}

func (s *Store) AddCategory(c domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		return ledgerErrors.NewValidationError("Category id is required")
	}
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	next := append(append([]domain.Category{}, s.categories...), c)
	if err := s.persist(KeyCategories, next); err != nil {
		return err
	}
	s.categories = next
	s.notify(KeyCategories)
	return nil
}

func (s *Store) UpdateCategory(c domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Category{}, s.categories...)
	for i := range next {
		if next[i].ID == c.ID {
			c.CreatedAt = next[i].CreatedAt
			c.UpdatedAt = s.now()
			next[i] = c
			if err := s.persist(KeyCategories, next); err != nil {
				return err
			}
			s.categories = next
			s.notify(KeyCategories)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Category, 0, len(s.categories))
	found := false
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyCategories, next); err != nil {
		return err
	}
	s.categories = next
	s.notify(KeyCategories)
	return nil
}

// --- Niches ---

func (s *Store) Niches() []domain.Niche {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Niche{}, s.niches...)
}

// UpsertNiche inserts a new niche or refreshes the spend/income figures of
// an existing one.
func (s *Store) UpsertNiche(n domain.Niche) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		return ledgerErrors.NewValidationError("Niche id is required")
	}
	next := append([]domain.Niche{}, s.niches...)
	replaced := false
	for i := range next {
		if next[i].ID == n.ID {
			next[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, n)
	}
	if err := s.persist(KeyNiches, next); err != nil {
		return err
	}
	s.niches = next
	s.notify(KeyNiches)
	return nil
}

func (s *Store) DeleteNiche(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Niche, 0, len(s.niches))
	found := false
	for _, n := range s.niches {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	if !found {
		return ledgerErrors.ErrNotFound
	}
	if err := s.persist(KeyNiches, next); err != nil {
		return err
	}
	s.niches = next
	s.notify(KeyNiches)
	return nil
}

// --- Side fund ---

func (s *Store) SideFund() domain.SideFund {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sideFund
}

func (s *Store) UpdateSideFund(f domain.SideFund) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.CurrentAmount > f.TargetAmount {
		f.CurrentAmount = f.TargetAmount
	}
	if f.CurrentAmount < 0 {
		f.CurrentAmount = 0
	}
	if err := s.persist(KeySideFund, f); err != nil {
		return err
	}
	s.sideFund = f
	s.notify(KeySideFund)
	return nil
}

// --- Users & session ---

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User{}, s.users...)
}

func (s *Store) GetUser(id string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

func (s *Store) FindUserByUsername(username string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Username, username) {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

func (s *Store) AddUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		return ledgerErrors.NewValidationError("User id is required")
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			return ledgerErrors.ErrDuplicateID
		}
	}
	now := s.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	next := append(append([]domain.User{}, s.users...), u)
	if err := s.persist(KeyUsers, next); err != nil {
		return err
	}
	s.users = next
	s.notify(KeyUsers)
	return nil
}

func (s *Store) UpdateUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.User{}, s.users...)
	for i := range next {
		if next[i].ID == u.ID {
			u.CreatedAt = next[i].CreatedAt
			u.UpdatedAt = s.now()
			next[i] = u
			if err := s.persist(KeyUsers, next); err != nil {
				return err
			}
			s.users = next
			s.notify(KeyUsers)
			return nil
		}
	}
	return ledgerErrors.ErrNotFound
}

func (s *Store) Session() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	session := *s.session
	return &session, true
}

func (s *Store) SetSession(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeySession, session); err != nil {
		return err
	}
	s.session = &session
	s.notify(KeySession)
	return nil
}

func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(KeySession); err != nil {
		return err
	}
	s.session = nil
	s.notify(KeySession)
	return nil
}

// --- Settings ---

func (s *Store) Setting(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[name]
	return v, ok
}

func (s *Store) Settings() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

func (s *Store) SetSetting(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("setting %q could not be encoded: %w", name, err)
	}
	if err := s.backend.Store(SettingsPrefix+name, raw); err != nil {
		return fmt.Errorf("storage write for setting %q failed: %w", name, err)
	}
	s.settings[name] = value
	s.notify(SettingsPrefix + name)
	return nil
}

func (s *Store) RemoveSetting(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(SettingsPrefix + name); err != nil {
		return err
	}
	delete(s.settings, name)
	s.notify(SettingsPrefix + name)
	return nil
}
