package account

import (
	"context"
	"strings"

	"bingo-hall/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*AccountResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !store.ValidRole(in.Role) {
		return nil, ErrInvalidRequest
	}
	acc, err := s.store.CreateAccount(ctx, name, in.Role)
	if err != nil {
		return nil, err
	}
	return toResponse(acc), nil
}

func (s *Service) Get(ctx context.Context, accountID string) (*AccountResponse, error) {
	acc, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toResponse(acc), nil
}

func (s *Service) Balance(ctx context.Context, accountID string) (*BalanceResponse, error) {
	acc, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{AccountID: acc.ID, Package: acc.Package}, nil
}

func toResponse(acc *store.Account) *AccountResponse {
	return &AccountResponse{
		AccountID: acc.ID,
		Name:      acc.Name,
		Role:      acc.Role,
		Package:   acc.Package,
		HouseID:   acc.HouseID,
		CreatedAt: acc.CreatedAt,
	}
}
