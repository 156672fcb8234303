package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/domain"
)

type TransactionRepository struct {
	store *Store
}

// PostTransaction mirrors the Postgres commit: everything between the
// balance re-read and the log append happens under one lock, so concurrent
// transfers on the same account serialize and stale-balance decisions are
// impossible.
func (r *TransactionRepository) PostTransaction(_ context.Context, params repo_interfaces.PostTransactionParams) (domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.bankAccounts[params.FromAccountID]
	if !ok || from.Deleted {
		return domain.Transaction{}, &domain.AccountNotFoundError{AccountID: params.FromAccountID}
	}
	to, ok := s.bankAccounts[params.ToAccountID]
	if !ok || to.Deleted {
		return domain.Transaction{}, &domain.AccountNotFoundError{AccountID: params.ToAccountID}
	}

	newFromBalance := from.Balance.Sub(params.Amount)
	if newFromBalance.IsNegative() {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	from.Balance = newFromBalance
	from.UpdatedAt = now()
	to.Balance = to.Balance.Add(params.Amount.Mul(params.ExchangeRate))
	to.UpdatedAt = from.UpdatedAt

	s.bankAccounts[from.ID] = from
	s.bankAccounts[to.ID] = to

	transaction := domain.Transaction{
		ID:            uuid.NewString(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		FromCurrency:  from.Currency,
		ToCurrency:    to.Currency,
		Amount:        params.Amount,
		ExchangeRate:  params.ExchangeRate,
		AuditPayload:  params.AuditPayload,
		Timestamp:     now(),
	}

	s.transactions[transaction.ID] = transaction
	s.transactionOrder = append(s.transactionOrder, transaction.ID)

	return transaction, nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id string) (domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return transaction, nil
}

func (r *TransactionRepository) List(_ context.Context, limit, offset int) ([]domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Transaction, 0, len(s.transactionOrder))
	for _, id := range s.transactionOrder {
		all = append(all, s.transactions[id])
	}
	return page(all, limit, offset), nil
}
