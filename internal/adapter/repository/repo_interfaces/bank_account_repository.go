package repo_interfaces

import (
	"context"

	"github.com/moneyops/transaction-manager/internal/domain"
)

type BankAccountRepository interface {
	Create(ctx context.Context, bankAccount domain.BankAccount) (domain.BankAccount, error)
	GetLiveByID(ctx context.Context, id string) (domain.BankAccount, error)
	// List returns live bank accounts in creation order. A limit of zero or
	// less means no limit.
	List(ctx context.Context, limit, offset int) ([]domain.BankAccount, error)
	SoftDelete(ctx context.Context, id string) error
}
