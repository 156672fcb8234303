package service_interfaces

import (
	"context"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/commons"
	"github.com/moneyops/transaction-manager/internal/domain"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type BankAccountService interface {
	CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error)
	GetBankAccount(ctx context.Context, id string) (commons.Response[models.BankAccountResponse], error)
	ListBankAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.BankAccountResponse], error)
	DeleteBankAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type TransactionService interface {
	CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error)
}

// ExchangeRateSource supplies fresh conversion quotes for a base currency.
// The transaction service receives one through its constructor; there is no
// process-wide rate source.
type ExchangeRateSource interface {
	GetExchangeRate(ctx context.Context, base domain.Currency) (domain.RateQuote, error)
}
