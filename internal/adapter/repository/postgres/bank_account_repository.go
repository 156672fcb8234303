package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
)

type BankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Create(ctx context.Context, bankAccount domain.BankAccount) (domain.BankAccount, error) {
	logger.Info("bank account repository create", logger.Fields{
		"ownerId":  bankAccount.OwnerID,
		"currency": bankAccount.Currency,
	})

	const query = `
INSERT INTO bank_accounts (
	owner_id,
	currency,
	balance
) VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		bankAccount.OwnerID,
		bankAccount.Currency,
		bankAccount.Balance,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		logger.Error("bank account repository create failed", err, logger.Fields{
			"ownerId": bankAccount.OwnerID,
		})
		return domain.BankAccount{}, fmt.Errorf("create bank account: %w", err)
	}

	bankAccount.ID = id
	bankAccount.CreatedAt = createdAt
	bankAccount.UpdatedAt = updatedAt

	logger.Info("bank account repository create success", logger.Fields{
		"bankAccountId": bankAccount.ID,
	})

	return bankAccount, nil
}

func (r *BankAccountRepository) GetLiveByID(ctx context.Context, id string) (domain.BankAccount, error) {
	const query = `
SELECT id, owner_id, currency, balance, deleted, created_at, updated_at
FROM bank_accounts
WHERE id = $1 AND deleted = FALSE`

	var bankAccount domain.BankAccount
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bankAccount.ID,
		&bankAccount.OwnerID,
		&bankAccount.Currency,
		&bankAccount.Balance,
		&bankAccount.Deleted,
		&bankAccount.CreatedAt,
		&bankAccount.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BankAccount{}, domain.ErrRecordNotFound
		}
		return domain.BankAccount{}, fmt.Errorf("get bank account by id: %w", err)
	}

	return bankAccount, nil
}

func (r *BankAccountRepository) List(ctx context.Context, limit, offset int) ([]domain.BankAccount, error) {
	const query = `
SELECT id, owner_id, currency, balance, deleted, created_at, updated_at
FROM bank_accounts
WHERE deleted = FALSE
ORDER BY created_at
LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	bankAccounts := make([]domain.BankAccount, 0)
	for rows.Next() {
		var bankAccount domain.BankAccount
		if err := rows.Scan(
			&bankAccount.ID,
			&bankAccount.OwnerID,
			&bankAccount.Currency,
			&bankAccount.Balance,
			&bankAccount.Deleted,
			&bankAccount.CreatedAt,
			&bankAccount.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		bankAccounts = append(bankAccounts, bankAccount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}

	return bankAccounts, nil
}

func (r *BankAccountRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE bank_accounts SET deleted = TRUE, updated_at = NOW()
WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("soft delete bank account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete bank account: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	logger.Info("bank account repository soft delete success", logger.Fields{
		"bankAccountId": id,
	})

	return nil
}
