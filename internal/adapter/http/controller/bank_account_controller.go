package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/commons"
)

type BankAccountService interface {
	CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error)
	GetBankAccount(ctx context.Context, id string) (commons.Response[models.BankAccountResponse], error)
	ListBankAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.BankAccountResponse], error)
	DeleteBankAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type BankAccountController struct {
	service BankAccountService
}

func NewBankAccountController(service BankAccountService) *BankAccountController {
	return &BankAccountController{service: service}
}

func (c *BankAccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /bank-accounts", wrap(c.createBankAccount, authMiddleware))
	mux.Handle("GET /bank-accounts", wrap(c.listBankAccounts, authMiddleware))
	mux.Handle("GET /bank-accounts/{id}", wrap(c.getBankAccount, authMiddleware))
	mux.Handle("DELETE /bank-accounts/{id}", wrap(c.deleteBankAccount, authMiddleware))
}

func (c *BankAccountController) createBankAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BankAccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BankAccountResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.CreateBankAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *BankAccountController) getBankAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetBankAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *BankAccountController) listBankAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	response, err := c.service.ListBankAccounts(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *BankAccountController) deleteBankAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.DeleteBankAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
