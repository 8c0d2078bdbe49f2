package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apprecharge "bingo-hall/internal/app/recharge"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type RechargeHandlers struct {
	svc *apprecharge.Service
}

func NewRechargeHandlers(svc *apprecharge.Service) *RechargeHandlers {
	return &RechargeHandlers{svc: svc}
}

type rechargeBody struct {
	Amount         decimal.Decimal `json:"amount"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (h *RechargeHandlers) CreateHouse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HouseID string `json:"house_id"`
			rechargeBody
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp, err := h.svc.CreateHouse(r.Context(), caller, apprecharge.CreateHouseInput{
			HouseID:        body.HouseID,
			Amount:         body.Amount,
			CommissionRate: body.CommissionRate,
		})
		if err != nil {
			if errors.Is(err, apprecharge.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *RechargeHandlers) UpdateHouse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body rechargeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.UpdateHouse(r.Context(), apprecharge.UpdateHouseInput{
			RechargeID:     chi.URLParam(r, "recharge_id"),
			Amount:         body.Amount,
			CommissionRate: body.CommissionRate,
		})
		if err != nil {
			if errors.Is(err, apprecharge.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *RechargeHandlers) CreateAgent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AgentID string `json:"agent_id"`
			rechargeBody
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp, err := h.svc.CreateAgent(r.Context(), caller, apprecharge.CreateAgentInput{
			AgentID:        body.AgentID,
			Amount:         body.Amount,
			CommissionRate: body.CommissionRate,
		})
		if err != nil {
			if errors.Is(err, apprecharge.ErrInvalidRequest) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *RechargeHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := apprecharge.ListFilter{
			HouseID:    r.URL.Query().Get("house_id"),
			RechargeBy: r.URL.Query().Get("recharge_by"),
		}
		filter.From, filter.To = timeWindow(r)
		resp, err := h.svc.List(r.Context(), filter)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *RechargeHandlers) ListAgent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := apprecharge.AgentListFilter{
			AgentID: r.URL.Query().Get("agent_id"),
		}
		filter.From, filter.To = timeWindow(r)
		resp, err := h.svc.ListAgent(r.Context(), filter)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func timeWindow(r *http.Request) (from, to time.Time) {
	if v := r.URL.Query().Get("from"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			from = parsed
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			to = parsed
		}
	}
	return from, to
}
