package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	currencyCodeUSD = 840
	currencyCodeUAH = 980
)

// MonobankClient fetches the USD to base-currency exchange rate from the
// public Monobank currency feed.
type MonobankClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMonobankClient() *MonobankClient {
	return &MonobankClient{
		baseURL:    "https://api.monobank.ua",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewMonobankClientWithURL points the client at a non-default endpoint.
// Tests use this with httptest servers.
func NewMonobankClientWithURL(baseURL string) *MonobankClient {
	c := NewMonobankClient()
	c.baseURL = baseURL
	return c
}

func (c *MonobankClient) GetExchangeRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bank/currency", nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("error querying currency API: %s", resp.Status)
	}

	var rates []struct {
		CurrencyCodeA int     `json:"currencyCodeA"`
		CurrencyCodeB int     `json:"currencyCodeB"`
		RateBuy       float64 `json:"rateBuy"`
		RateSell      float64 `json:"rateSell"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return 0, err
	}

	for _, r := range rates {
		if r.CurrencyCodeA == currencyCodeUSD && r.CurrencyCodeB == currencyCodeUAH {
			if r.RateBuy > 0 {
				return r.RateBuy, nil
			}
			if r.RateSell > 0 {
				return r.RateSell, nil
			}
		}
	}
	return 0, fmt.Errorf("USD rate not present in currency feed")
}
