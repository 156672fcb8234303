package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gowebpki/jcs"
	"github.com/shopspring/decimal"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/commons"
	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
	"github.com/moneyops/transaction-manager/internal/usecase/service_interfaces"
)

// Verify that TransactionService implements the service_interfaces.TransactionService interface
var _ service_interfaces.TransactionService = (*TransactionService)(nil)

// TransactionService is the transfer engine. Each CreateTransaction call is
// single-shot: validate, price, commit; a failure at any step is terminal for
// that call and leaves no partial state behind.
type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	bankAccountRepo repo_interfaces.BankAccountRepository
	rateSource      service_interfaces.ExchangeRateSource
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	bankAccountRepo repo_interfaces.BankAccountRepository,
	rateSource service_interfaces.ExchangeRateSource,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		bankAccountRepo: bankAccountRepo,
		rateSource:      rateSource,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service create transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	fromID := strings.TrimSpace(req.From)
	toID := strings.TrimSpace(req.To)

	if fromID == toID {
		err := domain.ErrSelfTransfer
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	fromAccount, err := s.loadBankAccount(ctx, fromID)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse](err.Error()), err
	}
	toAccount, err := s.loadBankAccount(ctx, toID)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse](err.Error()), err
	}

	if fromAccount.Balance.Sub(req.Amount).IsNegative() {
		err := domain.ErrInsufficientBalance
		return commons.ErrorResponse[models.TransactionResponse](err.Error()), err
	}

	exchangeRate, err := s.resolveExchangeRate(ctx, fromAccount.Currency, toAccount.Currency)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse](err.Error()), err
	}

	auditPayload, err := canonicalAuditPayload(req, exchangeRate)
	if err != nil {
		logger.Error("transaction service audit payload build failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	logger.Info("transaction service executing transaction", logger.Fields{
		"fromAccountId": fromID,
		"toAccountId":   toID,
		"amount":        req.Amount,
		"exchangeRate":  exchangeRate,
		"finalValue":    req.Amount.Mul(exchangeRate),
	})

	transaction, err := s.transactionRepo.PostTransaction(ctx, repo_interfaces.PostTransactionParams{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        req.Amount,
		ExchangeRate:  exchangeRate,
		AuditPayload:  auditPayload,
	})
	if err != nil {
		// The commit re-validates under lock, so a concurrent transfer can
		// surface these here even after the checks above passed.
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.TransactionResponse](err.Error()), err
		}
		logger.Error("transaction service commit failed", err, logger.Fields{
			"fromAccountId": fromID,
			"toAccountId":   toID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	logger.Info("transaction service transaction successfully made and saved", logger.Fields{
		"transactionId": transaction.ID,
	})

	return commons.SuccessResponse("transaction successful", mapTransactionToResponse(transaction)), nil
}

func (s *TransactionService) loadBankAccount(ctx context.Context, id string) (domain.BankAccount, error) {
	account, err := s.bankAccountRepo.GetLiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.BankAccount{}, &domain.AccountNotFoundError{AccountID: id}
		}
		return domain.BankAccount{}, fmt.Errorf("load bank account %s: %w", id, err)
	}
	return account, nil
}

// resolveExchangeRate prices the transfer. Same-currency transfers apply a
// rate of exactly 1 without consulting the rate source; everything else uses
// a fresh quote for base = source currency, and a missing pair is never
// silently defaulted.
func (s *TransactionService) resolveExchangeRate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		logger.Info("transaction service same currency, skipping exchange rate lookup", logger.Fields{
			"currency": from,
		})
		return decimal.NewFromInt(1), nil
	}

	quote, err := s.rateSource.GetExchangeRate(ctx, from)
	if err != nil {
		return decimal.Decimal{}, &domain.RateLookupError{Base: from, Err: err}
	}

	rate, ok := quote.RateFor(to)
	if !ok || !rate.IsPositive() {
		return decimal.Decimal{}, &domain.RateNotFoundError{From: from, To: to}
	}

	logger.Info("transaction service exchange rate extracted", logger.Fields{
		"fromCurrency": from,
		"toCurrency":   to,
		"exchangeRate": rate,
	})

	return rate, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error) {
	transaction, err := s.transactionRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse](fmt.Sprintf("Transaction with id %s does not exist", id)), domain.ErrRecordNotFound
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to get transaction", "Unable to fetch transaction right now"), err
	}

	return commons.SuccessResponse("transaction fetched successfully", mapTransactionToResponse(transaction)), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error) {
	transactions, err := s.transactionRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Error("transaction service list failed", err, nil)
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	resp := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		resp = append(resp, mapTransactionToResponse(transaction))
	}

	return commons.SuccessResponse("transactions fetched successfully", resp), nil
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID: transaction.ID,
		From: models.TransactionAccountResponse{
			AccountID: transaction.FromAccountID,
			Currency:  transaction.FromCurrency.String(),
		},
		To: models.TransactionAccountResponse{
			AccountID: transaction.ToAccountID,
			Currency:  transaction.ToCurrency.String(),
		},
		Amount:       transaction.Amount,
		ExchangeRate: transaction.ExchangeRate,
		Timestamp:    transaction.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// canonicalAuditPayload renders the request plus the applied rate as RFC 8785
// canonical JSON, so stored audit payloads are byte-stable regardless of map
// ordering.
func canonicalAuditPayload(req models.CreateTransactionRequest, exchangeRate decimal.Decimal) (string, error) {
	payload := struct {
		From         string          `json:"from"`
		To           string          `json:"to"`
		Amount       decimal.Decimal `json:"amount"`
		ExchangeRate decimal.Decimal `json:"exchange_rate"`
	}{
		From:         strings.TrimSpace(req.From),
		To:           strings.TrimSpace(req.To),
		Amount:       req.Amount,
		ExchangeRate: exchangeRate,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal audit payload: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize audit payload: %w", err)
	}

	return string(canonical), nil
}
