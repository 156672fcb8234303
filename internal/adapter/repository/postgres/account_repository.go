package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/moneyops/transaction-manager/internal/domain"
	"github.com/moneyops/transaction-manager/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"email": account.Email,
	})

	const query = `
INSERT INTO accounts (
	first_name,
	last_name,
	email,
	date_of_birth
) VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.DateOfBirth,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrEmailTaken
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"email": account.Email,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.ID,
	})

	return account, nil
}

func (r *AccountRepository) GetLiveByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT id, first_name, last_name, email, date_of_birth, deleted, created_at, updated_at
FROM accounts
WHERE id = $1 AND deleted = FALSE`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetLiveByEmail(ctx context.Context, email string) (domain.Account, error) {
	const query = `
SELECT id, first_name, last_name, email, date_of_birth, deleted, created_at, updated_at
FROM accounts
WHERE LOWER(email) = LOWER($1) AND deleted = FALSE`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	const query = `
SELECT id, first_name, last_name, email, date_of_birth, deleted, created_at, updated_at
FROM accounts
WHERE deleted = FALSE
ORDER BY created_at
LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.FirstName,
			&account.LastName,
			&account.Email,
			&account.DateOfBirth,
			&account.Deleted,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

// SoftDelete hides the owner and its bank accounts in one transaction.
func (r *AccountRepository) SoftDelete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin soft delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
UPDATE accounts SET deleted = TRUE, updated_at = NOW()
WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("soft delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete account: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE bank_accounts SET deleted = TRUE, updated_at = NOW()
WHERE owner_id = $1 AND deleted = FALSE`, id); err != nil {
		return fmt.Errorf("soft delete owned bank accounts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit soft delete: %w", err)
	}

	logger.Info("account repository soft delete success", logger.Fields{
		"accountId": id,
	})

	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.DateOfBirth,
		&account.Deleted,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return account, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
