package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/commons"
	"github.com/moneyops/transaction-manager/internal/domain"
)

type transactionServiceStub struct {
	createFn func(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	getFn    func(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	listFn   func(ctx context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error)
}

func (s *transactionServiceStub) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	return s.createFn(ctx, req)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error) {
	return s.listFn(ctx, limit, offset)
}

func newTransactionMux(stub *transactionServiceStub) *http.ServeMux {
	mux := http.NewServeMux()
	NewTransactionController(stub).RegisterRoutes(mux, nil)
	return mux
}

const validTransferBody = `{
	"from": "3f1b4a1f-6b0f-43c5-b8f5-7d5f7b5840b1",
	"to": "84b0b33c-98ac-4bd7-8e6f-5a8a3ad51f4a",
	"amount": "100"
}`

func TestCreateTransactionReturnsCreated(t *testing.T) {
	stub := &transactionServiceStub{
		createFn: func(_ context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
			return commons.SuccessResponse("transaction successful", models.TransactionResponse{ID: "tx-1"}), nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(validTransferBody))
	newTransactionMux(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
}

func TestCreateTransactionRejectsMalformedBody(t *testing.T) {
	stub := &transactionServiceStub{
		createFn: func(context.Context, models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
			t.Fatal("service must not be called for a malformed body")
			return commons.Response[models.TransactionResponse]{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"from":`))
	newTransactionMux(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateTransactionRejectsInvalidRequest(t *testing.T) {
	stub := &transactionServiceStub{
		createFn: func(context.Context, models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
			t.Fatal("service must not be called for an invalid request")
			return commons.Response[models.TransactionResponse]{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"from":"x","to":"y","amount":"0"}`))
	newTransactionMux(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateTransactionErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", &domain.AccountNotFoundError{AccountID: "abc"}, http.StatusNotFound},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusBadRequest},
		{"self transfer", domain.ErrSelfTransfer, http.StatusBadRequest},
		{"rate not found", &domain.RateNotFoundError{From: domain.CurrencyUSD, To: domain.CurrencyEUR}, http.StatusNotFound},
		{"rate lookup failed", &domain.RateLookupError{Base: domain.CurrencyUSD, Err: context.DeadlineExceeded}, http.StatusBadGateway},
		{"unclassified", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &transactionServiceStub{
				createFn: func(context.Context, models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
					return commons.ErrorResponse[models.TransactionResponse](tc.err.Error()), tc.err
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(validTransferBody))
			newTransactionMux(stub).ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGetTransactionUsesPathID(t *testing.T) {
	stub := &transactionServiceStub{
		getFn: func(_ context.Context, id string) (commons.Response[models.TransactionResponse], error) {
			if id != "tx-42" {
				t.Fatalf("expected id tx-42, got %q", id)
			}
			return commons.SuccessResponse("transaction fetched successfully", models.TransactionResponse{ID: id}), nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/tx-42", nil)
	newTransactionMux(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	stub := &transactionServiceStub{
		getFn: func(_ context.Context, id string) (commons.Response[models.TransactionResponse], error) {
			return commons.ErrorResponse[models.TransactionResponse]("Transaction with id " + id + " does not exist"), domain.ErrRecordNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/missing", nil)
	newTransactionMux(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", defaultPageLimit, 0},
		{"explicit", "?limit=10&offset=30", 10, 30},
		{"limit capped", "?limit=9999", maxPageLimit, 0},
		{"garbage ignored", "?limit=abc&offset=-5", defaultPageLimit, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &transactionServiceStub{
				listFn: func(_ context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error) {
					if limit != tc.wantLimit || offset != tc.wantOffset {
						t.Fatalf("expected limit/offset %d/%d, got %d/%d", tc.wantLimit, tc.wantOffset, limit, offset)
					}
					return commons.SuccessResponse("transactions fetched successfully", []models.TransactionResponse{}), nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/transactions"+tc.query, nil)
			newTransactionMux(stub).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
		})
	}
}
