package syncdata

import (
	"strings"
	"time"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

// Merge reconciles two documents record by record. Matching ids keep the
// copy with the strictly newer updatedAt, so merging the same document
// twice is a no-op and replicas converge regardless of merge order for
// disjoint id sets. The local copy wins ties.
func Merge(local, incoming Document) Document {
	out := local
	out.Transactions = mergeTransactions(local.Transactions, incoming.Transactions)
	out.Goals = mergeGoals(local.Goals, incoming.Goals)
	out.Assets = mergeAssets(local.Assets, incoming.Assets)
	out.Liabilities = mergeLiabilities(local.Liabilities, incoming.Liabilities)
	out.Categories = mergeCategories(local.Categories, incoming.Categories)
	out.Niches = mergeNiches(local.Niches, incoming.Niches)
	out.SideFund = mergeSideFund(local, incoming)
	out.Users = mergeUsers(local.Users, incoming.Users)
	out.Sessions = mergeSessions(local.Sessions, incoming.Sessions)
	out.Settings = mergeSettings(local.Settings, incoming.Settings)
	if incoming.LastSync > out.LastSync {
		out.LastSync = incoming.LastSync
	}
	return out
}

func newer(incoming, local time.Time) bool {
	return incoming.After(local)
}

func mergeTransactions(local, incoming []domain.Transaction) []domain.Transaction {
	out := append([]domain.Transaction{}, local...)
	index := make(map[string]int, len(out))
	for i, t := range out {
		index[t.ID] = i
	}
	for _, t := range incoming {
		if i, ok := index[t.ID]; ok {
			if newer(t.UpdatedAt, out[i].UpdatedAt) {
				out[i] = t
			}
			continue
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}

func mergeGoals(local, incoming []domain.Goal) []domain.Goal {
	out := append([]domain.Goal{}, local...)
	index := make(map[string]int, len(out))
	for i, g := range out {
		index[g.ID] = i
	}
	for _, g := range incoming {
		if i, ok := index[g.ID]; ok {
			if newer(g.UpdatedAt, out[i].UpdatedAt) {
				out[i] = g
			}
			continue
		}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	return out
}

func mergeAssets(local, incoming []domain.Asset) []domain.Asset {
	out := append([]domain.Asset{}, local...)
	index := make(map[string]int, len(out))
	for i, a := range out {
		index[a.ID] = i
	}
	for _, a := range incoming {
		if i, ok := index[a.ID]; ok {
			if newer(a.UpdatedAt, out[i].UpdatedAt) {
				out[i] = a
			}
			continue
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	return out
}

func mergeLiabilities(local, incoming []domain.Liability) []domain.Liability {
	out := append([]domain.Liability{}, local...)
	index := make(map[string]int, len(out))
	for i, l := range out {
		index[l.ID] = i
	}
	for _, l := range incoming {
		if i, ok := index[l.ID]; ok {
			if newer(l.UpdatedAt, out[i].UpdatedAt) {
				out[i] = l
			}
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func mergeCategories(local, incoming []domain.Category) []domain.Category {
	out := append([]domain.Category{}, local...)
	index := make(map[string]int, len(out))
	for i, c := range out {
		index[c.ID] = i
	}
	for _, c := range incoming {
		if i, ok := index[c.ID]; ok {
			if newer(c.UpdatedAt, out[i].UpdatedAt) {
				out[i] = c
			}
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

// Niches carry no timestamps, so unknown ids are adopted and known ones
// keep the local copy.
func mergeNiches(local, incoming []domain.Niche) []domain.Niche {
	out := append([]domain.Niche{}, local...)
	seen := make(map[string]bool, len(out))
	for _, n := range out {
		seen[n.ID] = true
	}
	for _, n := range incoming {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n)
		}
	}
	return out
}

// The side fund is a singleton without per-record timestamps; the document
// exported more recently carries the authoritative copy.
func mergeSideFund(local, incoming Document) *domain.SideFund {
	if incoming.SideFund != nil && (local.SideFund == nil || incoming.LastSync > local.LastSync) {
		fund := *incoming.SideFund
		return &fund
	}
	return local.SideFund
}

// Users match on id or, failing that, on case-insensitive username so two
// devices that registered the same account independently collapse into one.
func mergeUsers(local, incoming []domain.User) []domain.User {
	out := append([]domain.User{}, local...)
	byID := make(map[string]int, len(out))
	byName := make(map[string]int, len(out))
	for i, u := range out {
		byID[u.ID] = i
		byName[strings.ToLower(u.Username)] = i
	}
	for _, u := range incoming {
		i, ok := byID[u.ID]
		if !ok {
			i, ok = byName[strings.ToLower(u.Username)]
		}
		if ok {
			if newer(u.UpdatedAt, out[i].UpdatedAt) {
				delete(byName, strings.ToLower(out[i].Username))
				out[i] = u
				byID[u.ID] = i
				byName[strings.ToLower(u.Username)] = i
			}
			continue
		}
		byID[u.ID] = len(out)
		byName[strings.ToLower(u.Username)] = len(out)
		out = append(out, u)
	}
	return out
}

// An incoming session is adopted only when it is still live and outlasts
// whatever is active locally. Expired sessions never displace a live one.
func mergeSessions(local, incoming []domain.Session) []domain.Session {
	now := time.Now().UnixMilli()
	best := append([]domain.Session{}, local...)
	for _, s := range incoming {
		if s.ExpiresAt <= now {
			continue
		}
		if len(best) == 0 || s.ExpiresAt > best[0].ExpiresAt {
			best = []domain.Session{s}
		}
	}
	return best
}

func mergeSettings(local, incoming map[string]string) map[string]string {
	out := make(map[string]string, len(local)+len(incoming))
	for k, v := range local {
		out[k] = v
	}
	for k, v := range incoming {
		out[k] = v
	}
	return out
}
