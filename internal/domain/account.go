package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is an owner: the person bank accounts belong to. Soft-deleted
// accounts are invisible everywhere except the delete path itself.
type Account struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BankAccount holds a balance in a single currency. The balance is never
// negative after a committed transaction; only the transaction posting path
// mutates it.
type BankAccount struct {
	ID        string
	OwnerID   string
	Currency  Currency
	Balance   decimal.Decimal
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
