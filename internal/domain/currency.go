package domain

import "strings"

// Currency is a 3-letter code drawn from the closed set of currencies the
// system supports. Anything outside this set is rejected at the edges, so
// code holding a Currency taken from a stored account may treat it as valid.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
	CurrencyCHF Currency = "CHF"
	CurrencySEK Currency = "SEK"
	CurrencyNZD Currency = "NZD"
	CurrencyKRW Currency = "KRW"
	CurrencySGD Currency = "SGD"
	CurrencyTRY Currency = "TRY"
	CurrencyRUB Currency = "RUB"
	CurrencyZAR Currency = "ZAR"
	CurrencyBRL Currency = "BRL"
	CurrencyKPW Currency = "KPW"
)

var currencyNames = map[Currency]string{
	CurrencyUSD: "United States Dollar",
	CurrencyEUR: "Euro",
	CurrencyGBP: "British Pound Sterling",
	CurrencyJPY: "Japanese Yen",
	CurrencyAUD: "Australian Dollar",
	CurrencyCAD: "Canadian Dollar",
	CurrencyCNY: "Chinese Yuan",
	CurrencyINR: "Indian Rupee",
	CurrencyCHF: "Swiss Franc",
	CurrencySEK: "Swedish Krona",
	CurrencyNZD: "New Zealand Dollar",
	CurrencyKRW: "South Korean Won",
	CurrencySGD: "Singapore Dollar",
	CurrencyTRY: "Turkish Lira",
	CurrencyRUB: "Russian Ruble",
	CurrencyZAR: "South African Rand",
	CurrencyBRL: "Brazilian Real",
	CurrencyKPW: "North Korean Won",
}

// ParseCurrency normalizes a raw code and checks it against the supported set.
func ParseCurrency(raw string) (Currency, error) {
	code := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := currencyNames[code]; !ok {
		return "", ErrCurrencyNotSupported
	}
	return code, nil
}

func (c Currency) Valid() bool {
	_, ok := currencyNames[c]
	return ok
}

// FullName returns the human-readable currency name, or "" for unknown codes.
func (c Currency) FullName() string {
	return currencyNames[c]
}

func (c Currency) String() string {
	return string(c)
}
