package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	"github.com/financialos/FinancialOS/internal/storage"
)

type fakeRates struct {
	exchangeRate float64
	prices       map[string]float64
}

func (f *fakeRates) ExchangeRate(ctx context.Context) float64 { return f.exchangeRate }

func (f *fakeRates) CryptoPriceUSD(ctx context.Context, currency string) float64 {
	return f.prices[currency]
}

func newAssetFixture(t *testing.T, rates *fakeRates) (*AssetService, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)
	return NewAssetService(store, rates), store
}

func TestCreateAsset_NormalizesUSD(t *testing.T) {
	svc, store := newAssetFixture(t, &fakeRates{exchangeRate: 37.5})

	asset := domain.Asset{ID: "a1", Name: "USD savings", Type: domain.AssetLiquid, Value: 100, Currency: domain.CurrencyUSD}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	stored, _ := store.GetAsset("a1")
	assert.Equal(t, 3750.0, stored.Value)
}

func TestCreateAsset_NormalizesEURWithSpread(t *testing.T) {
	svc, store := newAssetFixture(t, &fakeRates{exchangeRate: 37.5})

	asset := domain.Asset{ID: "a1", Name: "EUR savings", Type: domain.AssetLiquid, Value: 100, Currency: domain.CurrencyEUR}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	stored, _ := store.GetAsset("a1")
	assert.InDelta(t, 4125.0, stored.Value, 1e-9)
}

func TestCreateAsset_DerivesCryptoValueFromQuantity(t *testing.T) {
	rates := &fakeRates{exchangeRate: 37.5, prices: map[string]float64{domain.CurrencyETH: 3000}}
	svc, store := newAssetFixture(t, rates)

	asset := domain.Asset{
		ID: "a1", Name: "ETH stack", Type: domain.AssetCrypto,
		Currency: domain.CurrencyETH, CryptoAmount: 2,
	}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	stored, _ := store.GetAsset("a1")
	assert.Equal(t, 225000.0, stored.Value)
	assert.Equal(t, 3000.0, stored.CryptoPriceAtPurchase)
}

func TestCreateAsset_BaseCurrencyStoredVerbatim(t *testing.T) {
	svc, store := newAssetFixture(t, &fakeRates{exchangeRate: 37.5})

	asset := domain.Asset{ID: "a1", Name: "Cash", Type: domain.AssetCash, Value: 900, Currency: domain.CurrencyBase}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	stored, _ := store.GetAsset("a1")
	assert.Equal(t, 900.0, stored.Value)
}

func TestRevalueCryptoAssets_RewritesOnPriceMove(t *testing.T) {
	rates := &fakeRates{exchangeRate: 37.5, prices: map[string]float64{domain.CurrencyETH: 3000}}
	svc, store := newAssetFixture(t, rates)

	asset := domain.Asset{
		ID: "a1", Name: "ETH stack", Type: domain.AssetCrypto,
		Currency: domain.CurrencyETH, CryptoAmount: 2,
	}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	rates.prices[domain.CurrencyETH] = 3200
	updated, err := svc.RevalueCryptoAssets(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, updated)

	stored, _ := store.GetAsset("a1")
	assert.Equal(t, 240000.0, stored.Value)
}

func TestRevalueCryptoAssets_SkipsWithinEpsilon(t *testing.T) {
	rates := &fakeRates{exchangeRate: 37.5, prices: map[string]float64{domain.CurrencyBTC: 50000}}
	svc, _ := newAssetFixture(t, rates)

	asset := domain.Asset{
		ID: "a1", Name: "BTC stack", Type: domain.AssetCrypto,
		Currency: domain.CurrencyBTC, CryptoAmount: 0.5,
	}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	updated, err := svc.RevalueCryptoAssets(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestRevalueCryptoAssets_IgnoresNonCrypto(t *testing.T) {
	rates := &fakeRates{exchangeRate: 37.5, prices: map[string]float64{}}
	svc, _ := newAssetFixture(t, rates)

	asset := domain.Asset{ID: "a1", Name: "Cash", Type: domain.AssetCash, Value: 900, Currency: domain.CurrencyBase}
	assert.NoError(t, svc.CreateAsset(context.Background(), &asset))

	updated, err := svc.RevalueCryptoAssets(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestDisplayValue_InverseConversions(t *testing.T) {
	rates := &fakeRates{exchangeRate: 37.5, prices: map[string]float64{domain.CurrencyETH: 3200}}
	svc, _ := newAssetFixture(t, rates)
	ctx := context.Background()

	assert.InDelta(t, 100.0, svc.DisplayValue(ctx, 3750, domain.CurrencyUSD), 1e-9)
	assert.InDelta(t, 100.0, svc.DisplayValue(ctx, 4125, domain.CurrencyEUR), 1e-9)
	assert.InDelta(t, 2.0, svc.DisplayValue(ctx, 240000, domain.CurrencyETH), 1e-9)
	assert.Equal(t, 900.0, svc.DisplayValue(ctx, 900, domain.CurrencyBase))
}
