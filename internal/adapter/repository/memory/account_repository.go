package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/moneyops/transaction-manager/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if !existing.Deleted && strings.EqualFold(existing.Email, account.Email) {
			return domain.Account{}, domain.ErrEmailTaken
		}
	}

	account.ID = uuid.NewString()
	account.CreatedAt = now()
	account.UpdatedAt = account.CreatedAt

	s.accounts[account.ID] = account
	s.accountOrder = append(s.accountOrder, account.ID)

	return account, nil
}

func (r *AccountRepository) GetLiveByID(_ context.Context, id string) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || account.Deleted {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetLiveByEmail(_ context.Context, email string) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.accountOrder {
		account := s.accounts[id]
		if !account.Deleted && strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (r *AccountRepository) List(_ context.Context, limit, offset int) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make([]domain.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		if account := s.accounts[id]; !account.Deleted {
			live = append(live, account)
		}
	}
	return page(live, limit, offset), nil
}

func (r *AccountRepository) SoftDelete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok || account.Deleted {
		return domain.ErrRecordNotFound
	}

	account.Deleted = true
	account.UpdatedAt = now()
	s.accounts[id] = account

	for bankAccountID, bankAccount := range s.bankAccounts {
		if bankAccount.OwnerID == id && !bankAccount.Deleted {
			bankAccount.Deleted = true
			bankAccount.UpdatedAt = now()
			s.bankAccounts[bankAccountID] = bankAccount
		}
	}

	return nil
}
