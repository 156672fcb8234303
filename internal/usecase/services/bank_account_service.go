package services

import (
	"context"
	"errors"
	"strings"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/commons"
	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
	"github.com/moneyops/transaction-manager/internal/usecase/service_interfaces"
)

// Verify that BankAccountService implements the service_interfaces.BankAccountService interface
var _ service_interfaces.BankAccountService = (*BankAccountService)(nil)

type BankAccountService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	accountRepo     repo_interfaces.AccountRepository
}

func NewBankAccountService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	accountRepo repo_interfaces.AccountRepository,
) *BankAccountService {
	return &BankAccountService{
		bankAccountRepo: bankAccountRepo,
		accountRepo:     accountRepo,
	}
}

func (s *BankAccountService) CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error) {
	logger.Info("bank account service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.BankAccountResponse]("validation failed", err.Error()), err
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return commons.ErrorResponse[models.BankAccountResponse](domain.ErrCurrencyNotSupported.Error()), err
	}

	ownerID := strings.TrimSpace(req.OwnerID)
	if _, err := s.accountRepo.GetLiveByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			notFound := &domain.AccountNotFoundError{AccountID: ownerID}
			return commons.ErrorResponse[models.BankAccountResponse](notFound.Error()), notFound
		}
		return commons.ErrorResponse[models.BankAccountResponse]("failed to create bank account", "Unable to create bank account right now"), err
	}

	bankAccount, err := s.bankAccountRepo.Create(ctx, domain.BankAccount{
		OwnerID:  ownerID,
		Currency: currency,
		Balance:  req.OpeningBalance(),
	})
	if err != nil {
		logger.Error("bank account service create failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return commons.ErrorResponse[models.BankAccountResponse]("failed to create bank account", "Unable to create bank account right now"), err
	}

	logger.Info("bank account service new bank account created", logger.Fields{
		"bankAccountId": bankAccount.ID,
	})

	return commons.SuccessResponse("bank account created successfully", mapBankAccountToResponse(bankAccount)), nil
}

func (s *BankAccountService) GetBankAccount(ctx context.Context, id string) (commons.Response[models.BankAccountResponse], error) {
	bankAccount, err := s.bankAccountRepo.GetLiveByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			notFound := &domain.AccountNotFoundError{AccountID: id}
			return commons.ErrorResponse[models.BankAccountResponse](notFound.Error()), notFound
		}
		return commons.ErrorResponse[models.BankAccountResponse]("failed to get bank account", "Unable to fetch bank account right now"), err
	}

	return commons.SuccessResponse("bank account fetched successfully", mapBankAccountToResponse(bankAccount)), nil
}

func (s *BankAccountService) ListBankAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.BankAccountResponse], error) {
	bankAccounts, err := s.bankAccountRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Error("bank account service list failed", err, nil)
		return commons.ErrorResponse[[]models.BankAccountResponse]("failed to list bank accounts", "Unable to fetch bank accounts right now"), err
	}

	resp := make([]models.BankAccountResponse, 0, len(bankAccounts))
	for _, bankAccount := range bankAccounts {
		resp = append(resp, mapBankAccountToResponse(bankAccount))
	}

	return commons.SuccessResponse("bank accounts fetched successfully", resp), nil
}

func (s *BankAccountService) DeleteBankAccount(ctx context.Context, id string) (commons.Response[struct{}], error) {
	if err := s.bankAccountRepo.SoftDelete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			notFound := &domain.AccountNotFoundError{AccountID: id}
			return commons.ErrorResponse[struct{}](notFound.Error()), notFound
		}
		logger.Error("bank account service delete failed", err, logger.Fields{
			"bankAccountId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete bank account", "Unable to delete bank account right now"), err
	}

	logger.Info("bank account service bank account deleted", logger.Fields{
		"bankAccountId": id,
	})

	return commons.SuccessResponse("bank account deleted successfully", struct{}{}), nil
}

func mapBankAccountToResponse(bankAccount domain.BankAccount) models.BankAccountResponse {
	return models.BankAccountResponse{
		ID:       bankAccount.ID,
		Currency: bankAccount.Currency.String(),
		Balance:  bankAccount.Balance,
		OwnerID:  bankAccount.OwnerID,
	}
}
