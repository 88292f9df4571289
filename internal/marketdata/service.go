package marketdata

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

// Fallback values used whenever the upstream feed is unreachable.
const (
	FallbackExchangeRate = 37.5
	FallbackBTCPrice     = 50000
	FallbackETHPrice     = 3000
)

const (
	exchangeRateTTL = time.Hour
	cryptoPriceTTL  = 30 * time.Second
)

// RateService is what the ledger consumes: a current exchange rate and
// crypto unit prices. Implementations never fail; they fall back to the
// last cached value or a hardcoded default instead.
type RateService interface {
	ExchangeRate(ctx context.Context) float64
	CryptoPriceUSD(ctx context.Context, currency string) float64
}

type fxClient interface {
	GetExchangeRate(ctx context.Context) (float64, error)
}

type cryptoClient interface {
	GetPriceUSD(ctx context.Context, coinID string) (float64, error)
}

type cachedRate struct {
	value     float64
	fetchedAt time.Time
}

func (c *cachedRate) fresh(now time.Time, ttl time.Duration) bool {
	return c.value > 0 && now.Sub(c.fetchedAt) < ttl
}

// Service caches the exchange rate for an hour and crypto prices for thirty
// seconds, refreshing lazily on read and eagerly from the scheduler.
type Service struct {
	fx     fxClient
	crypto cryptoClient
	now    func() time.Time

	mu    sync.Mutex
	rate  cachedRate
	coins map[string]*cachedRate
}

func NewService(fx fxClient, crypto cryptoClient) *Service {
	return &Service{
		fx:     fx,
		crypto: crypto,
		now:    time.Now,
		coins: map[string]*cachedRate{
			domain.CurrencyBTC: {},
			domain.CurrencyETH: {},
		},
	}
}

func (s *Service) ExchangeRate(ctx context.Context) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.rate.fresh(now, exchangeRateTTL) {
		return s.rate.value
	}

	rate, err := s.fx.GetExchangeRate(ctx)
	if err != nil {
		log.Printf("Exchange rate fetch failed, using fallback: %v", err)
		if s.rate.value > 0 {
			return s.rate.value
		}
		return FallbackExchangeRate
	}
	s.rate = cachedRate{value: rate, fetchedAt: now}
	return rate
}

func (s *Service) CryptoPriceUSD(ctx context.Context, currency string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.coins[currency]
	if !ok {
		log.Printf("No price feed for currency %q", currency)
		return 0
	}

	now := s.now()
	if cached.fresh(now, cryptoPriceTTL) {
		return cached.value
	}

	price, err := s.crypto.GetPriceUSD(ctx, coinID(currency))
	if err != nil {
		log.Printf("Crypto price fetch for %s failed, using fallback: %v", currency, err)
		if cached.value > 0 {
			return cached.value
		}
		return fallbackPrice(currency)
	}
	cached.value = price
	cached.fetchedAt = now
	return price
}

// Refresh forces both caches to re-fetch. Called by the cron schedulers so
// request paths normally hit warm caches.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.rate.fetchedAt = time.Time{}
	for _, c := range s.coins {
		c.fetchedAt = time.Time{}
	}
	s.mu.Unlock()

	s.ExchangeRate(ctx)
	s.CryptoPriceUSD(ctx, domain.CurrencyBTC)
	s.CryptoPriceUSD(ctx, domain.CurrencyETH)
}

func coinID(currency string) string {
	switch currency {
	case domain.CurrencyBTC:
		return "bitcoin"
	case domain.CurrencyETH:
		return "ethereum"
	}
	return ""
}

func fallbackPrice(currency string) float64 {
	switch currency {
	case domain.CurrencyBTC:
		return FallbackBTCPrice
	case domain.CurrencyETH:
		return FallbackETHPrice
	}
	return 0
}
