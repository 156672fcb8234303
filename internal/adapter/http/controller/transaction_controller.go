package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/commons"
)

type TransactionService interface {
	CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, limit, offset int) (commons.Response[[]models.TransactionResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /transactions", wrap(c.createTransaction, authMiddleware))
	mux.Handle("GET /transactions", wrap(c.listTransactions, authMiddleware))
	mux.Handle("GET /transactions/{id}", wrap(c.getTransaction, authMiddleware))
}

func (c *TransactionController) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.CreateTransaction(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *TransactionController) getTransaction(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) listTransactions(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	response, err := c.service.ListTransactions(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
