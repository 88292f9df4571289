package application

import (
	"context"
	"log"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
	"github.com/financialos/FinancialOS/internal/marketdata"
)

// revalueEpsilon keeps price-tick revaluation from rewriting an asset over
// floating-point noise.
const revalueEpsilon = 0.01

// eurSpread approximates the EUR rate from the USD rate the way the
// original ledger did.
const eurSpread = 1.1

// AssetService normalizes asset values into the base currency on creation
// and revalues crypto positions as unit prices move.
type AssetService struct {
	assets domain.AssetRepository
	rates  marketdata.RateService
}

func NewAssetService(assets domain.AssetRepository, rates marketdata.RateService) *AssetService {
	return &AssetService{assets: assets, rates: rates}
}

func (s *AssetService) Assets() []domain.Asset {
	return s.assets.Assets()
}

func (s *AssetService) GetAsset(id string) (*domain.Asset, bool) {
	return s.assets.GetAsset(id)
}

func (s *AssetService) Total(assetType domain.AssetType) float64 {
	return s.assets.AssetTotal(assetType)
}

// CreateAsset stores the asset with its value normalized to the base
// currency. For USD/EUR positions a.Value arrives in the original currency;
// for BTC/ETH positions a.CryptoAmount is authoritative and the value is
// derived from the current unit price.
func (s *AssetService) CreateAsset(ctx context.Context, a *domain.Asset) error {
	switch a.Currency {
	case domain.CurrencyUSD:
		a.Value = a.Value * s.rates.ExchangeRate(ctx)
	case domain.CurrencyEUR:
		a.Value = a.Value * s.rates.ExchangeRate(ctx) * eurSpread
	case domain.CurrencyBTC, domain.CurrencyETH:
		price := s.rates.CryptoPriceUSD(ctx, a.Currency)
		a.CryptoPriceAtPurchase = price
		a.Value = a.CryptoAmount * price * s.rates.ExchangeRate(ctx)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return s.assets.AddAsset(*a)
}

func (s *AssetService) UpdateAsset(a domain.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.assets.UpdateAsset(a)
}

func (s *AssetService) DeleteAsset(id string) error {
	return s.assets.DeleteAsset(id)
}

// RevalueCryptoAssets recomputes every BTC/ETH position from quantity,
// current unit price and exchange rate, rewriting stored values only when
// the delta exceeds the epsilon. Returns how many assets changed.
func (s *AssetService) RevalueCryptoAssets(ctx context.Context) (int, error) {
	updated := 0
	for _, asset := range s.assets.Assets() {
		if !asset.IsCrypto() || asset.CryptoAmount <= 0 {
			continue
		}
		price := s.rates.CryptoPriceUSD(ctx, asset.Currency)
		if price <= 0 {
			continue
		}
		newValue := asset.CryptoAmount * price * s.rates.ExchangeRate(ctx)
		if diff := newValue - asset.Value; diff > -revalueEpsilon && diff < revalueEpsilon {
			continue
		}
		asset.Value = newValue
		if err := s.assets.UpdateAsset(asset); err != nil {
			if ledgerErrors.IsNotFound(err) {
				// Deleted between the list and the write, nothing to do.
				continue
			}
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		log.Printf("Revalued %d crypto asset(s)", updated)
	}
	return updated, nil
}

// DisplayValue converts a stored base-currency value into the requested
// display currency using the current rates. The stored value is never
// rewritten by display conversion.
func (s *AssetService) DisplayValue(ctx context.Context, value float64, currency string) float64 {
	switch currency {
	case domain.CurrencyUSD:
		return value / s.rates.ExchangeRate(ctx)
	case domain.CurrencyEUR:
		return value / (s.rates.ExchangeRate(ctx) * eurSpread)
	case domain.CurrencyBTC, domain.CurrencyETH:
		price := s.rates.CryptoPriceUSD(ctx, currency)
		if price <= 0 {
			return 0
		}
		return value / (price * s.rates.ExchangeRate(ctx))
	}
	return value
}
