package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBankAccountRequest struct {
	Currency string           `json:"currency"`
	Balance  *decimal.Decimal `json:"balance"`
	OwnerID  string           `json:"ownerId"`
}

func (r CreateBankAccountRequest) Validate() error {
	var errs []string

	if len(strings.TrimSpace(r.Currency)) != 3 {
		errs = append(errs, "currency must be a 3-letter code")
	}
	// A nil balance means "open the account empty".
	if r.Balance != nil && r.Balance.IsNegative() {
		errs = append(errs, "balance cannot be negative at the moment of account creation")
	}
	if _, err := uuid.Parse(strings.TrimSpace(r.OwnerID)); err != nil {
		errs = append(errs, "ownerId must be a valid id")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// OpeningBalance returns the requested balance, defaulting to zero.
func (r CreateBankAccountRequest) OpeningBalance() decimal.Decimal {
	if r.Balance == nil {
		return decimal.Zero
	}
	return *r.Balance
}

type BankAccountResponse struct {
	ID       string          `json:"id"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	OwnerID  string          `json:"ownerId"`
}
