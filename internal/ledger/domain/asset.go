package domain

import (
	"time"

	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type AssetType string

const (
	AssetLiquid   AssetType = "liquid"
	AssetIlliquid AssetType = "illiquid"
	AssetCar      AssetType = "car"
	AssetCash     AssetType = "cash"
	AssetCrypto   AssetType = "crypto"
	AssetProperty AssetType = "property"
	AssetOther    AssetType = "other"
)

const (
	CurrencyBase = "BASE"
	CurrencyUSD  = "USD"
	CurrencyEUR  = "EUR"
	CurrencyBTC  = "BTC"
	CurrencyETH  = "ETH"
)

// Asset holds one position of the user's capital. Value is always stored
// normalized to the base currency; Currency records what the position was
// originally denominated in so display can re-derive it. Crypto positions
// additionally keep the quantity held, which is what revaluation works from.
type Asset struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Type                  AssetType `json:"type"`
	Value                 float64   `json:"value"`
	Currency              string    `json:"currency"`
	Description           string    `json:"description,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CryptoAmount          float64   `json:"cryptoAmount,omitempty"`
	CryptoPriceAtPurchase float64   `json:"cryptoPriceAtPurchase,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func validCurrency(c string) bool {
	switch c {
	case CurrencyBase, CurrencyUSD, CurrencyEUR, CurrencyBTC, CurrencyETH:
		return true
	}
	return false
}

func validAssetType(t AssetType) bool {
	switch t {
	case AssetLiquid, AssetIlliquid, AssetCar, AssetCash, AssetCrypto, AssetProperty, AssetOther:
		return true
	}
	return false
}

func (a *Asset) Validate() error {
	if a.Name == "" {
		return ledgerErrors.NewValidationError("Asset name is required")
	}
	if !validAssetType(a.Type) {
		return ledgerErrors.NewValidationError("Unknown asset type")
	}
	if a.Value < 0 {
		return ledgerErrors.NewValidationError("Asset value must not be negative")
	}
	if !validCurrency(a.Currency) {
		return ledgerErrors.NewValidationError("Unknown asset currency")
	}
	if a.IsCrypto() && a.CryptoAmount < 0 {
		return ledgerErrors.NewValidationError("Crypto amount must not be negative")
	}
	return nil
}

// IsCrypto reports whether the asset is priced in BTC or ETH and therefore
// subject to revaluation on price ticks.
func (a *Asset) IsCrypto() bool {
	return a.Currency == CurrencyBTC || a.Currency == CurrencyETH
}

type AssetRepository interface {
	Assets() []Asset
	GetAsset(id string) (*Asset, bool)
	AddAsset(a Asset) error
	UpdateAsset(a Asset) error
	DeleteAsset(id string) error
	AssetTotal(assetType AssetType) float64
}
