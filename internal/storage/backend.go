package storage

// Persistence keys, one collection per key. Settings use one key per entry
// under the "settings_" namespace.
const (
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
	KeyAssets       = "assets"
	KeyLiabilities  = "liabilities"
	KeyCategories   = "categories"
	KeyNiches       = "niches"
	KeySideFund     = "side_fund"
	KeyUsers        = "users"
	KeySession      = "session"

	SettingsPrefix = "settings_"
)

// Backend is the durable key-value layer underneath the Store. Load returns
// (nil, nil) for a missing key. Implementations must make Store durable
// before returning: a successful Store call means the data survives a
// process restart.
type Backend interface {
	Load(key string) ([]byte, error)
	Store(key string, data []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}
