package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/moneyops/transaction-manager/internal/adapter/http/models"
	"github.com/moneyops/transaction-manager/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, limit, offset int) (commons.Response[[]models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /accounts", wrap(c.createAccount, authMiddleware))
	mux.Handle("GET /accounts", wrap(c.listAccounts, authMiddleware))
	mux.Handle("GET /accounts/{id}", wrap(c.getAccount, authMiddleware))
	mux.Handle("DELETE /accounts/{id}", wrap(c.deleteAccount, authMiddleware))
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	response, err := c.service.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
