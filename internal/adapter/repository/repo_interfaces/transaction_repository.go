package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/moneyops/transaction-manager/internal/domain"
)

// PostTransactionParams carries everything the store needs to commit one
// transfer. The applied exchange rate is resolved by the caller before the
// commit begins, so no external call happens while account rows are locked.
type PostTransactionParams struct {
	FromAccountID string
	ToAccountID   string
	// Amount to debit, denominated in the source account's currency.
	Amount decimal.Decimal
	// ExchangeRate multiplies Amount into the destination currency.
	ExchangeRate decimal.Decimal
	AuditPayload string
}

type TransactionRepository interface {
	// PostTransaction re-reads both accounts, re-validates liveness and
	// balance, applies both balance mutations, and appends the transaction
	// log row, all inside one unit with serializable semantics. Either
	// every write becomes visible or none do.
	//
	// Returns domain.AccountNotFoundError when either account is missing or
	// soft-deleted, and domain.ErrInsufficientBalance when the debit would
	// leave the source balance negative.
	PostTransaction(ctx context.Context, params PostTransactionParams) (domain.Transaction, error)
	GetByID(ctx context.Context, id string) (domain.Transaction, error)
	// List returns transactions in posting order. A limit of zero or less
	// means no limit.
	List(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
}
