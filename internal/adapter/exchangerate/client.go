// Package exchangerate is the HTTP client for the external exchange-rate
// API. A quote is fetched fresh on every call; callers decide what a missing
// pair means, the client only distinguishes "the API answered" from "it
// did not".
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
)

// apiResponse is the wire shape of GET /{api_key}/latest/{base}.
type apiResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetExchangeRate fetches the current quote for the given base currency.
func (c *Client) GetExchangeRate(ctx context.Context, base domain.Currency) (domain.RateQuote, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("build exchange rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("exchange rate client request failed", err, logger.Fields{
			"baseCurrency": base,
		})
		return domain.RateQuote{}, fmt.Errorf("call exchange rate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Error("exchange rate client non-success status", nil, logger.Fields{
			"baseCurrency": base,
			"status":       resp.StatusCode,
		})
		return domain.RateQuote{}, fmt.Errorf("exchange rate api returned status %d for base %s", resp.StatusCode, base)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateQuote{}, fmt.Errorf("decode exchange rate response: %w", err)
	}

	quote := domain.RateQuote{
		Base:  base,
		Rates: make(map[domain.Currency]decimal.Decimal, len(body.ConversionRates)),
	}
	for code, rate := range body.ConversionRates {
		quote.Rates[domain.Currency(strings.ToUpper(code))] = rate
	}

	logger.Info("exchange rate client quote fetched", logger.Fields{
		"baseCurrency": base,
		"rateCount":    len(quote.Rates),
	})

	return quote, nil
}
