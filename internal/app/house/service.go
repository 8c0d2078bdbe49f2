package house

import (
	"context"
	"strings"

	"bingo-hall/internal/ledger"
	"bingo-hall/internal/store"
)

type Service struct {
	ledger *ledger.Ledger
	store  *store.Store
}

func NewService(l *ledger.Ledger, st *store.Store) *Service {
	return &Service{ledger: l, store: st}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*HouseResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.HouseAdminID == "" {
		return nil, ErrInvalidRequest
	}
	house, err := s.ledger.CreateHouse(ctx, strings.TrimSpace(in.Name), in.HouseAdminID, in.CashierID)
	if err != nil {
		return nil, err
	}
	return toResponse(house), nil
}

func (s *Service) AssignCashier(ctx context.Context, in AssignCashierInput) (*HouseResponse, error) {
	if in.HouseID == "" || in.CashierID == "" {
		return nil, ErrInvalidRequest
	}
	house, err := s.ledger.AssignCashier(ctx, in.HouseID, in.CashierID)
	if err != nil {
		return nil, err
	}
	return toResponse(house), nil
}

func (s *Service) Get(ctx context.Context, houseID string) (*HouseResponse, error) {
	house, err := s.store.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	return toResponse(house), nil
}

func toResponse(h *store.House) *HouseResponse {
	return &HouseResponse{
		HouseID:      h.ID,
		Name:         h.Name,
		HouseAdminID: h.HouseAdminID,
		CashierID:    h.CashierID,
		CreatedAt:    h.CreatedAt,
	}
}
