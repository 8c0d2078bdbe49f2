package recharge

import (
	"context"

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

// CreateHouse applies a house top-up paid by the authenticated caller.
func (s *Service) CreateHouse(ctx context.Context, payer *store.Account, in CreateHouseInput) (*RechargeResponse, error) {
	if payer == nil || in.HouseID == "" {
		return nil, ErrInvalidRequest
	}
	rec, err := s.ledger.CreateHouseRecharge(ctx, in.HouseID, in.Amount, in.CommissionRate, payer.ID)
	if err != nil {
		return nil, err
	}
	return toRechargeResponse(rec), nil
}

func (s *Service) UpdateHouse(ctx context.Context, in UpdateHouseInput) (*RechargeResponse, error) {
	if in.RechargeID == "" {
		return nil, ErrInvalidRequest
	}
	rec, err := s.ledger.UpdateHouseRecharge(ctx, in.RechargeID, in.Amount, in.CommissionRate)
	if err != nil {
		return nil, err
	}
	return toRechargeResponse(rec), nil
}

func (s *Service) CreateAgent(ctx context.Context, payer *store.Account, in CreateAgentInput) (*AgentRechargeResponse, error) {
	if payer == nil || in.AgentID == "" {
		return nil, ErrInvalidRequest
	}
	rec, err := s.ledger.CreateAgentRecharge(ctx, in.AgentID, in.Amount, in.CommissionRate, payer.ID)
	if err != nil {
		return nil, err
	}
	return toAgentResponse(rec), nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResponse, error) {
	rows, err := s.store.ListRecharges(ctx, store.RechargeFilter{
		HouseID:    filter.HouseID,
		RechargeBy: filter.RechargeBy,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListItem{
			RechargeResponse: *toRechargeResponse(&row.Recharge),
			HouseName:        row.HouseName,
			PayerName:        row.PayerName,
		})
	}
	return &ListResponse{Items: out}, nil
}

func (s *Service) ListAgent(ctx context.Context, filter AgentListFilter) (*AgentListResponse, error) {
	rows, err := s.store.ListAgentRecharges(ctx, store.AgentRechargeFilter{
		AgentID: filter.AgentID,
		From:    filter.From,
		To:      filter.To,
	})
	if err != nil {
		return nil, err
	}
	out := make([]AgentListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, AgentListItem{
			AgentRechargeResponse: *toAgentResponse(&row.AgentRecharge),
			AgentName:             row.AgentName,
			PayerName:             row.PayerName,
		})
	}
	return &AgentListResponse{Items: out}, nil
}

func toRechargeResponse(rec *store.Recharge) *RechargeResponse {
	return &RechargeResponse{
		RechargeID:     rec.ID,
		HouseID:        rec.HouseID,
		Amount:         rec.Amount,
		CommissionRate: rec.SuperAdminCommission,
		PackageAdded:   rec.PackageAdded,
		RechargeBy:     rec.RechargeBy,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toAgentResponse(rec *store.AgentRecharge) *AgentRechargeResponse {
	return &AgentRechargeResponse{
		RechargeID:     rec.ID,
		AgentID:        rec.AgentID,
		Amount:         rec.Amount,
		CommissionRate: rec.SuperAdminCommission,
		PackageAdded:   rec.PackageAdded,
		RechargeBy:     rec.RechargeBy,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
