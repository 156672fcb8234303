package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneyops/transaction-manager/internal/adapter/exchangerate"
	"github.com/moneyops/transaction-manager/internal/domain"
)

func TestGetExchangeRateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-key/latest/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"USD": 1, "EUR": 0.85, "gbp": 0.7523}
		}`))
	}))
	defer server.Close()

	client := exchangerate.NewClient(server.URL, "test-key", 5*time.Second)

	quote, err := client.GetExchangeRate(context.Background(), domain.CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, domain.CurrencyUSD, quote.Base)

	rate, ok := quote.RateFor(domain.CurrencyEUR)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.85")), "rate must survive the wire exactly, got %s", rate)

	// Currency codes are normalized to upper case.
	rate, ok = quote.RateFor(domain.CurrencyGBP)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.7523")))
}

func TestGetExchangeRateMissingPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1}}`))
	}))
	defer server.Close()

	client := exchangerate.NewClient(server.URL, "test-key", 5*time.Second)

	quote, err := client.GetExchangeRate(context.Background(), domain.CurrencyUSD)
	require.NoError(t, err)

	_, ok := quote.RateFor(domain.CurrencyEUR)
	assert.False(t, ok, "absent pair is reported, never defaulted")
}

func TestGetExchangeRateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := exchangerate.NewClient(server.URL, "test-key", 5*time.Second)

	_, err := client.GetExchangeRate(context.Background(), domain.CurrencyUSD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestGetExchangeRateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "conversion_rates":`))
	}))
	defer server.Close()

	client := exchangerate.NewClient(server.URL, "test-key", 5*time.Second)

	_, err := client.GetExchangeRate(context.Background(), domain.CurrencyUSD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode exchange rate response")
}

func TestGetExchangeRateContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := exchangerate.NewClient(server.URL, "test-key", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetExchangeRate(ctx, domain.CurrencyUSD)
	require.Error(t, err)
}
