package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"bingo-hall/internal/ledger"
	"bingo-hall/internal/store"
)

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

// WriteHTTPErrorDetail adds a human-readable message naming the offending
// account or field, which the ledger contract requires for insufficiency and
// uniqueness failures.
func WriteHTTPErrorDetail(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code, "message": detail})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeLedgerError maps the ledger/store error taxonomy onto HTTP codes.
// Handlers deal with their own invalid_request sentinel before calling this.
func writeLedgerError(w http.ResponseWriter, err error) {
	var insufficient *store.InsufficientBalanceError
	var dup *store.DuplicateError
	switch {
	case errors.As(err, &insufficient):
		WriteHTTPErrorDetail(w, http.StatusConflict, "insufficient_balance", insufficient.Error())
	case errors.As(err, &dup):
		WriteHTTPErrorDetail(w, http.StatusConflict, "duplicate_constraint", dup.Error())
	case errors.Is(err, store.ErrInsufficientBalance):
		WriteHTTPError(w, http.StatusConflict, "insufficient_balance")
	case errors.Is(err, store.ErrDuplicate):
		WriteHTTPError(w, http.StatusConflict, "duplicate_constraint")
	case errors.Is(err, ledger.ErrCashierPresent):
		WriteHTTPError(w, http.StatusConflict, "cashier_already_present")
	case errors.Is(err, ledger.ErrInvalidRole):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_role")
	case errors.Is(err, ledger.ErrValidation):
		WriteHTTPError(w, http.StatusBadRequest, "validation_error")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
