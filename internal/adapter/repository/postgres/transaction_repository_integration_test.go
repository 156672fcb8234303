package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneyops/transaction-manager/internal/adapter/repository/postgres"
	"github.com/moneyops/transaction-manager/internal/adapter/repository/repo_interfaces"
	"github.com/moneyops/transaction-manager/internal/domain"
)

// These tests run against a real Postgres. Set TRANSACTION_MANAGER_TEST_DSN
// to enable them; they apply the migrations in ../../../../migrations and
// create their own rows, so any empty database works.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TRANSACTION_MANAGER_TEST_DSN"))
	if dsn == "" {
		t.Skip("TRANSACTION_MANAGER_TEST_DSN not set")
	}

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, dsn, "../../../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func seedTestBankAccount(t *testing.T, db *sql.DB, currency domain.Currency, balance string) string {
	t.Helper()

	ctx := context.Background()
	owner, err := postgres.NewAccountRepository(db).Create(ctx, domain.Account{
		FirstName: "Integration",
		LastName:  "Test",
		Email:     fmt.Sprintf("it-%s@example.com", uuid.NewString()),
	})
	require.NoError(t, err)

	bankAccount, err := postgres.NewBankAccountRepository(db).Create(ctx, domain.BankAccount{
		OwnerID:  owner.ID,
		Currency: currency,
		Balance:  decimal.RequireFromString(balance),
	})
	require.NoError(t, err)

	return bankAccount.ID
}

func testBalance(t *testing.T, db *sql.DB, id string) decimal.Decimal {
	t.Helper()

	bankAccount, err := postgres.NewBankAccountRepository(db).GetLiveByID(context.Background(), id)
	require.NoError(t, err)
	return bankAccount.Balance
}

func TestPostTransactionIntegration(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	fromID := seedTestBankAccount(t, db, domain.CurrencyUSD, "1000")
	toID := seedTestBankAccount(t, db, domain.CurrencyEUR, "100")

	transaction, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.RequireFromString("100"),
		ExchangeRate:  decimal.RequireFromString("0.85"),
		AuditPayload:  `{"amount":"100"}`,
	})
	require.NoError(t, err)
	require.NotEmpty(t, transaction.ID)

	assert.Equal(t, domain.CurrencyUSD, transaction.FromCurrency)
	assert.Equal(t, domain.CurrencyEUR, transaction.ToCurrency)
	assert.True(t, testBalance(t, db, fromID).Equal(decimal.RequireFromString("900")))
	assert.True(t, testBalance(t, db, toID).Equal(decimal.RequireFromString("185")))

	stored, err := repo.GetByID(context.Background(), transaction.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("100")))
	assert.True(t, stored.ExchangeRate.Equal(decimal.RequireFromString("0.85")))
}

func TestPostTransactionIntegrationInsufficientBalance(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	fromID := seedTestBankAccount(t, db, domain.CurrencyUSD, "50")
	toID := seedTestBankAccount(t, db, domain.CurrencyUSD, "0")

	_, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.RequireFromString("51"),
		ExchangeRate:  decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assert.True(t, testBalance(t, db, fromID).Equal(decimal.RequireFromString("50")))
	assert.True(t, testBalance(t, db, toID).IsZero())
}

func TestPostTransactionIntegrationUnknownAccount(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	fromID := seedTestBankAccount(t, db, domain.CurrencyUSD, "100")
	missingID := uuid.NewString()

	_, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
		FromAccountID: fromID,
		ToAccountID:   missingID,
		Amount:        decimal.RequireFromString("10"),
		ExchangeRate:  decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	var notFound *domain.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missingID, notFound.AccountID)

	assert.True(t, testBalance(t, db, fromID).Equal(decimal.RequireFromString("100")))
}

// TestPostTransactionIntegrationConcurrent hammers one source account from
// many goroutines. Serializable transactions plus row locks must admit
// exactly the transfers the balance covers, with the retry loop absorbing
// serialization failures.
func TestPostTransactionIntegrationConcurrent(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	const (
		workers = 20
		accepts = 10
	)

	fromID := seedTestBankAccount(t, db, domain.CurrencyUSD, "1000")
	toID := seedTestBankAccount(t, db, domain.CurrencyUSD, "0")

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
				FromAccountID: fromID,
				ToAccountID:   toID,
				Amount:        decimal.RequireFromString("100"),
				ExchangeRate:  decimal.NewFromInt(1),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrInsufficientBalance):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, accepts, succeeded)
	assert.Equal(t, workers-accepts, insufficient)
	assert.True(t, testBalance(t, db, fromID).IsZero())
	assert.True(t, testBalance(t, db, toID).Equal(decimal.RequireFromString("1000")))
}

// TestPostTransactionIntegrationOppositeDirections runs transfers A->B and
// B->A on the same account pair concurrently. The sorted-id lock order means
// both sides acquire row locks in the same sequence, so every round must
// terminate (no deadlock abort leaking through the retry loop) and the pair's
// combined balance is conserved.
func TestPostTransactionIntegrationOppositeDirections(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	const rounds = 15

	aID := seedTestBankAccount(t, db, domain.CurrencyUSD, "1000")
	bID := seedTestBankAccount(t, db, domain.CurrencyUSD, "1000")

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		for _, pair := range [][2]string{{aID, bID}, {bID, aID}} {
			from, to := pair[0], pair[1]
			go func() {
				defer wg.Done()

				_, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
					FromAccountID: from,
					ToAccountID:   to,
					Amount:        decimal.RequireFromString("10"),
					ExchangeRate:  decimal.NewFromInt(1),
				})
				if err != nil && !errors.Is(err, domain.ErrInsufficientBalance) {
					t.Errorf("transfer %s->%s failed: %v", from, to, err)
				}
			}()
		}
	}
	wg.Wait()

	total := testBalance(t, db, aID).Add(testBalance(t, db, bID))
	assert.True(t, total.Equal(decimal.RequireFromString("2000")),
		"combined balance must be conserved, got %s", total)
	assert.False(t, testBalance(t, db, aID).IsNegative())
	assert.False(t, testBalance(t, db, bID).IsNegative())
}

func TestTransactionListIntegrationZeroLimitMeansNoLimit(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewTransactionRepository(db)

	fromID := seedTestBankAccount(t, db, domain.CurrencyUSD, "100")
	toID := seedTestBankAccount(t, db, domain.CurrencyUSD, "0")

	posted, err := repo.PostTransaction(context.Background(), repo_interfaces.PostTransactionParams{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.RequireFromString("25"),
		ExchangeRate:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	listed, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)

	found := false
	for _, transaction := range listed {
		if transaction.ID == posted.ID {
			found = true
			break
		}
	}
	assert.True(t, found, "zero limit must return every row, missing %s", posted.ID)
}

func TestAccountRepositoryIntegrationDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewAccountRepository(db)

	email := fmt.Sprintf("dup-%s@example.com", uuid.NewString())

	_, err := repo.Create(context.Background(), domain.Account{
		FirstName: "First",
		LastName:  "Owner",
		Email:     email,
	})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), domain.Account{
		FirstName: "Second",
		LastName:  "Owner",
		Email:     strings.ToUpper(email),
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAccountRepositoryIntegrationSoftDeleteCascade(t *testing.T) {
	db := openTestDB(t)
	accountRepo := postgres.NewAccountRepository(db)
	bankAccountRepo := postgres.NewBankAccountRepository(db)

	owner, err := accountRepo.Create(context.Background(), domain.Account{
		FirstName: "Cascade",
		LastName:  "Owner",
		Email:     fmt.Sprintf("cascade-%s@example.com", uuid.NewString()),
	})
	require.NoError(t, err)

	bankAccount, err := bankAccountRepo.Create(context.Background(), domain.BankAccount{
		OwnerID:  owner.ID,
		Currency: domain.CurrencyUSD,
		Balance:  decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	require.NoError(t, accountRepo.SoftDelete(context.Background(), owner.ID))

	_, err = accountRepo.GetLiveByID(context.Background(), owner.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = bankAccountRepo.GetLiveByID(context.Background(), bankAccount.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}
