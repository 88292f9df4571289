package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CoinGeckoClient fetches BTC/ETH unit prices in USD from the free
// CoinGecko simple-price endpoint. No API key required.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    "https://api.coingecko.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func NewCoinGeckoClientWithURL(baseURL string) *CoinGeckoClient {
	c := NewCoinGeckoClient()
	c.baseURL = baseURL
	return c
}

// GetPriceUSD returns the current USD price of one coin ("bitcoin" or
// "ethereum" in CoinGecko's id scheme).
func (c *CoinGeckoClient) GetPriceUSD(ctx context.Context, coinID string) (float64, error) {
	url := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd", c.baseURL, coinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("error querying price API: %s", resp.Status)
	}

	var result map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}

	entry, ok := result[coinID]
	if !ok || entry.USD <= 0 {
		return 0, fmt.Errorf("price for %s not present in response", coinID)
	}
	return entry.USD, nil
}
