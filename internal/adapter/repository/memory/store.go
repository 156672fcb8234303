// Package memory holds in-memory implementations of the repository
// interfaces. They share one Store guarded by a single mutex, which gives
// transaction posting the same all-or-nothing, serialized semantics the
// Postgres implementations get from serializable transactions.
package memory

import (
	"sync"
	"time"

	"github.com/moneyops/transaction-manager/internal/domain"
)

type Store struct {
	mu sync.Mutex

	accounts         map[string]domain.Account
	accountOrder     []string
	bankAccounts     map[string]domain.BankAccount
	bankAccountOrder []string
	transactions     map[string]domain.Transaction
	transactionOrder []string
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		bankAccounts: make(map[string]domain.BankAccount),
		transactions: make(map[string]domain.Transaction),
	}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

func (s *Store) BankAccounts() *BankAccountRepository {
	return &BankAccountRepository{store: s}
}

func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

func now() time.Time {
	return time.Now().UTC()
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
