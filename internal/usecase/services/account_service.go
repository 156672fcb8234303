package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/commons"
	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
	"github.com/moneyops/transaction-manager/internal/usecase/service_interfaces"
)

// Verify that AccountService implements the service_interfaces.AccountService interface
var _ service_interfaces.AccountService = (*AccountService)(nil)

const (
	dateOnlyLayout  = "2006-01-02"
	timestampLayout = time.RFC3339
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.accountRepo.GetLiveByEmail(ctx, email); err == nil {
		return commons.ErrorResponse[models.AccountResponse](domain.ErrEmailTaken.Error()), domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	dateOfBirth, err := req.ParsedDateOfBirth()
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.Create(ctx, domain.Account{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		DateOfBirth: dateOfBirth,
	})
	if err != nil {
		// The unique index can still fire when two creates race.
		if errors.Is(err, domain.ErrEmailTaken) {
			return commons.ErrorResponse[models.AccountResponse](domain.ErrEmailTaken.Error()), err
		}
		logger.Error("account service create failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service new account created", logger.Fields{
		"accountId": account.ID,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetLiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			notFound := &domain.AccountNotFoundError{AccountID: id}
			return commons.ErrorResponse[models.AccountResponse](notFound.Error()), notFound
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Error("account service list failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, mapAccountToResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", resp), nil
}

// DeleteAccount soft-deletes the owner together with every bank account it
// owns; deleted entities stay on disk but disappear from reads and transfers.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error) {
	if err := s.accountRepo.SoftDelete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			notFound := &domain.AccountNotFoundError{AccountID: id}
			return commons.ErrorResponse[struct{}](notFound.Error()), notFound
		}
		logger.Error("account service delete failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service account and owned bank accounts deleted", logger.Fields{
		"accountId": id,
	})

	return commons.SuccessResponse("account deleted successfully", struct{}{}), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:          account.ID,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Email:       account.Email,
		DateOfBirth: account.DateOfBirth.Format(dateOnlyLayout),
		CreatedAt:   account.CreatedAt.UTC().Format(timestampLayout),
	}
}
