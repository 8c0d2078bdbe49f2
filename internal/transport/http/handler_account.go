package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appaccount "bingo-hall/internal/app/account"

	"github.com/go-chi/chi/v5"
)

type AccountHandlers struct {
	svc *appaccount.Service
}

func NewAccountHandlers(svc *appaccount.Service) *AccountHandlers {
	return &AccountHandlers{svc: svc}
}

func (h *AccountHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Create(r.Context(), appaccount.CreateInput{Name: body.Name, Role: body.Role})
		if err != nil {
			if errors.Is(err, appaccount.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Get(r.Context(), chi.URLParam(r, "account_id"))
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Balance(r.Context(), chi.URLParam(r, "account_id"))
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}
