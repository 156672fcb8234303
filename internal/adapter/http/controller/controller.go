package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/moneyops/transaction-manager/internal/domain"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps domain failures onto HTTP statuses: missing resources
// are 404, caller mistakes are 400, a dead rate source is 502, and anything
// unclassified stays a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrRateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrCurrencyNotSupported):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRateLookupFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxPageLimit)
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}

func wrap(handler http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware == nil {
		return handler
	}
	return authMiddleware(handler)
}
