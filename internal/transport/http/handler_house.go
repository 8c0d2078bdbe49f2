package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	apphouse "bingo-hall/internal/app/house"

	"github.com/go-chi/chi/v5"
)

type HouseHandlers struct {
	svc *apphouse.Service
}

func NewHouseHandlers(svc *apphouse.Service) *HouseHandlers {
	return &HouseHandlers{svc: svc}
}

func (h *HouseHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name         string `json:"name"`
			HouseAdminID string `json:"house_admin_id"`
			CashierID    string `json:"cashier_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Create(r.Context(), apphouse.CreateInput{
			Name:         body.Name,
			HouseAdminID: body.HouseAdminID,
			CashierID:    body.CashierID,
		})
		if err != nil {
			if errors.Is(err, apphouse.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *HouseHandlers) AssignCashier() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CashierID string `json:"cashier_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.AssignCashier(r.Context(), apphouse.AssignCashierInput{
			HouseID:   chi.URLParam(r, "house_id"),
			CashierID: body.CashierID,
		})
		if err != nil {
			if errors.Is(err, apphouse.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *HouseHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Get(r.Context(), chi.URLParam(r, "house_id"))
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}
