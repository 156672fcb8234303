package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/moneyops/transaction-manager/internal/domain"
)

type BankAccountRepository struct {
	store *Store
}

func (r *BankAccountRepository) Create(_ context.Context, bankAccount domain.BankAccount) (domain.BankAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	bankAccount.ID = uuid.NewString()
	bankAccount.CreatedAt = now()
	bankAccount.UpdatedAt = bankAccount.CreatedAt

	s.bankAccounts[bankAccount.ID] = bankAccount
	s.bankAccountOrder = append(s.bankAccountOrder, bankAccount.ID)

	return bankAccount, nil
}

func (r *BankAccountRepository) GetLiveByID(_ context.Context, id string) (domain.BankAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	bankAccount, ok := s.bankAccounts[id]
	if !ok || bankAccount.Deleted {
		return domain.BankAccount{}, domain.ErrRecordNotFound
	}
	return bankAccount, nil
}

func (r *BankAccountRepository) List(_ context.Context, limit, offset int) ([]domain.BankAccount, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make([]domain.BankAccount, 0, len(s.bankAccountOrder))
	for _, id := range s.bankAccountOrder {
		if bankAccount := s.bankAccounts[id]; !bankAccount.Deleted {
			live = append(live, bankAccount)
		}
	}
	return page(live, limit, offset), nil
}

func (r *BankAccountRepository) SoftDelete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	bankAccount, ok := s.bankAccounts[id]
	if !ok || bankAccount.Deleted {
		return domain.ErrRecordNotFound
	}

	bankAccount.Deleted = true
	bankAccount.UpdatedAt = now()
	s.bankAccounts[id] = bankAccount

	return nil
}
