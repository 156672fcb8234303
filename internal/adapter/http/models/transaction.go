package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	if _, err := uuid.Parse(strings.TrimSpace(r.From)); err != nil {
		errs = append(errs, "from must be a valid account id")
	}
	if _, err := uuid.Parse(strings.TrimSpace(r.To)); err != nil {
		errs = append(errs, "to must be a valid account id")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionAccountResponse struct {
	AccountID string `json:"accountId"`
	Currency  string `json:"currency"`
}

type TransactionResponse struct {
	ID           string                     `json:"id"`
	From         TransactionAccountResponse `json:"from"`
	To           TransactionAccountResponse `json:"to"`
	Amount       decimal.Decimal            `json:"amount"`
	ExchangeRate decimal.Decimal            `json:"exchangeRate"`
	Timestamp    string                     `json:"timestamp"`
}
