package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one committed movement of value between two bank accounts.
// Rows are append-only: a transaction is never edited or deleted once posted.
//
// FromCurrency and ToCurrency are snapshots taken at posting time, and
// ExchangeRate is the multiplier actually applied (exactly 1 for
// same-currency transfers). Amount is denominated in the source currency.
type Transaction struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	FromCurrency  Currency
	ToCurrency    Currency
	Amount        decimal.Decimal
	ExchangeRate  decimal.Decimal
	AuditPayload  string
	Timestamp     time.Time
}

// ConvertedAmount is the value credited to the destination account.
func (t Transaction) ConvertedAmount() decimal.Decimal {
	return t.Amount.Mul(t.ExchangeRate)
}
