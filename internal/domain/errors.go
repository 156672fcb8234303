package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrSelfTransfer         = errors.New("impossible to send money to same account")
	ErrInsufficientBalance  = errors.New("there is no enough balance in the account to make the transaction")
	ErrRateLookupFailed     = errors.New("exchange rate lookup failed")
	ErrRateNotFound         = errors.New("exchange rate not found")
	ErrCurrencyNotSupported = errors.New("the currency passed by the user does not exist")
	ErrEmailTaken           = errors.New("email is already taken")
)

// AccountNotFoundError reports which account id was missing or soft-deleted,
// while still matching ErrAccountNotFound through errors.Is.
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account with id %s does not exist", e.AccountID)
}

func (e *AccountNotFoundError) Unwrap() error { return ErrAccountNotFound }

// RateNotFoundError is raised when the rate source answered but its quote
// carried no usable rate for the ordered currency pair.
type RateNotFoundError struct {
	From Currency
	To   Currency
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("exchange rate between %s and %s not found", e.From, e.To)
}

func (e *RateNotFoundError) Unwrap() error { return ErrRateNotFound }

// RateLookupError is raised when the rate source itself could not be
// consulted: unreachable, non-success status, or a malformed body.
type RateLookupError struct {
	Base Currency
	Err  error
}

func (e *RateLookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exchange rate lookup for base currency %s failed: %v", e.Base, e.Err)
	}
	return fmt.Sprintf("exchange rate lookup for base currency %s failed", e.Base)
}

func (e *RateLookupError) Unwrap() error { return ErrRateLookupFailed }
