package repo_interfaces

import (
	"context"

	"github.com/moneyops/transaction-manager/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetLiveByID(ctx context.Context, id string) (domain.Account, error)
	GetLiveByEmail(ctx context.Context, email string) (domain.Account, error)
	// List returns live accounts in creation order. A limit of zero or less
	// means no limit.
	List(ctx context.Context, limit, offset int) ([]domain.Account, error)
	// SoftDelete marks the owner and every bank account it owns as deleted,
	// in one atomic unit.
	SoftDelete(ctx context.Context, id string) error
}
