package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
)

// maxCommitAttempts bounds retries of the posting transaction when Postgres
// aborts it with a serialization or deadlock failure.
const maxCommitAttempts = 5

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// PostTransaction commits one transfer: both balance mutations and the
// transaction log row inside a single serializable transaction. Account rows
// are locked in sorted id order so two transfers touching the same pair of
// accounts in opposite directions cannot deadlock.
func (r *TransactionRepository) PostTransaction(ctx context.Context, params repo_interfaces.PostTransactionParams) (domain.Transaction, error) {
	var (
		transaction domain.Transaction
		err         error
	)

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		transaction, err = r.postOnce(ctx, params)
		if err == nil {
			return transaction, nil
		}
		if !isSerializationFailure(err) {
			return domain.Transaction{}, err
		}
		logger.Info("transaction repository retrying after serialization failure", logger.Fields{
			"attempt":       attempt,
			"fromAccountId": params.FromAccountID,
			"toAccountId":   params.ToAccountID,
		})
	}

	logger.Error("transaction repository commit failed after retries", err, logger.Fields{
		"fromAccountId": params.FromAccountID,
		"toAccountId":   params.ToAccountID,
	})

	return domain.Transaction{}, fmt.Errorf("post transaction: %w", err)
}

func (r *TransactionRepository) postOnce(ctx context.Context, params repo_interfaces.PostTransactionParams) (domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin posting tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock order is by account id, not by transfer direction.
	firstID, secondID := params.FromAccountID, params.ToAccountID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	locked := make(map[string]lockedAccount, 2)
	for _, id := range []string{firstID, secondID} {
		account, err := lockAccount(ctx, tx, id)
		if err != nil {
			return domain.Transaction{}, err
		}
		locked[id] = account
	}

	from := locked[params.FromAccountID]
	to := locked[params.ToAccountID]

	newFromBalance := from.balance.Sub(params.Amount)
	if newFromBalance.IsNegative() {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	converted := params.Amount.Mul(params.ExchangeRate)
	newToBalance := to.balance.Add(converted)

	for _, update := range []struct {
		id      string
		balance decimal.Decimal
	}{
		{id: params.FromAccountID, balance: newFromBalance},
		{id: params.ToAccountID, balance: newToBalance},
	} {
		if _, err := tx.ExecContext(ctx, `
UPDATE bank_accounts SET balance = $2, updated_at = NOW()
WHERE id = $1`, update.id, update.balance); err != nil {
			return domain.Transaction{}, fmt.Errorf("update balance for account %s: %w", update.id, err)
		}
	}

	const insertQuery = `
INSERT INTO transaction_logs (
	from_account_id,
	to_account_id,
	from_currency,
	to_currency,
	original_amount,
	exchange_rate,
	audit_payload
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

	var (
		id        string
		createdAt time.Time
	)

	if err := tx.QueryRowContext(
		ctx,
		insertQuery,
		params.FromAccountID,
		params.ToAccountID,
		from.currency,
		to.currency,
		params.Amount,
		params.ExchangeRate,
		params.AuditPayload,
	).Scan(&id, &createdAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Transaction{}, fmt.Errorf("commit posting tx: %w", err)
	}

	logger.Info("transaction repository commit success", logger.Fields{
		"transactionId": id,
		"fromAccountId": params.FromAccountID,
		"toAccountId":   params.ToAccountID,
	})

	return domain.Transaction{
		ID:            id,
		FromAccountID: params.FromAccountID,
		ToAccountID:   params.ToAccountID,
		FromCurrency:  from.currency,
		ToCurrency:    to.currency,
		Amount:        params.Amount,
		ExchangeRate:  params.ExchangeRate,
		AuditPayload:  params.AuditPayload,
		Timestamp:     createdAt,
	}, nil
}

type lockedAccount struct {
	currency domain.Currency
	balance  decimal.Decimal
}

func lockAccount(ctx context.Context, tx *sql.Tx, id string) (lockedAccount, error) {
	const query = `
SELECT currency, balance
FROM bank_accounts
WHERE id = $1 AND deleted = FALSE
FOR UPDATE`

	var account lockedAccount
	if err := tx.QueryRowContext(ctx, query, id).Scan(&account.currency, &account.balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lockedAccount{}, &domain.AccountNotFoundError{AccountID: id}
		}
		return lockedAccount{}, fmt.Errorf("lock account %s: %w", id, err)
	}

	return account, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	const query = `
SELECT id, from_account_id, to_account_id, from_currency, to_currency, original_amount, exchange_rate, audit_payload, created_at
FROM transaction_logs
WHERE id = $1`

	var transaction domain.Transaction
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID,
		&transaction.FromAccountID,
		&transaction.ToAccountID,
		&transaction.FromCurrency,
		&transaction.ToCurrency,
		&transaction.Amount,
		&transaction.ExchangeRate,
		&transaction.AuditPayload,
		&transaction.Timestamp,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	const query = `
SELECT id, from_account_id, to_account_id, from_currency, to_currency, original_amount, exchange_rate, audit_payload, created_at
FROM transaction_logs
ORDER BY created_at
LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.FromAccountID,
			&transaction.ToAccountID,
			&transaction.FromCurrency,
			&transaction.ToCurrency,
			&transaction.Amount,
			&transaction.ExchangeRate,
			&transaction.AuditPayload,
			&transaction.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return transactions, nil
}

// isSerializationFailure reports whether err is a Postgres serialization
// (40001) or deadlock (40P01) abort, both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == "40001" || code == "40P01"
	}
	return false
}
