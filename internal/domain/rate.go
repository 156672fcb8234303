package domain

import "github.com/shopspring/decimal"

// RateQuote is a fresh set of conversion rates for one base currency.
// Quotes are transient: fetched per transaction that needs conversion and
// never cached, so the applied rate is always a value the source actually
// returned for that call.
type RateQuote struct {
	Base  Currency
	Rates map[Currency]decimal.Decimal
}

// RateFor looks up the multiplier from the base currency into target.
func (q RateQuote) RateFor(target Currency) (decimal.Decimal, bool) {
	if len(q.Rates) == 0 {
		return decimal.Decimal{}, false
	}
	rate, ok := q.Rates[target]
	return rate, ok
}
