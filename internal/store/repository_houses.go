package store

import (
	"context"
	"time"

	"bingo-hall/internal/docstore"
)

func (s *Store) CreateHouse(ctx context.Context, name, houseAdminID, cashierID string) (*House, error) {
	if _, err := findOne[House](ctx, s.db, collHouses, docstore.Query{"name": name}); err == nil {
		return nil, &DuplicateError{Field: "house name", Value: name}
	} else if err != ErrNotFound {
		return nil, err
	}
	if _, err := findOne[House](ctx, s.db, collHouses, docstore.Query{"house_admin_id": houseAdminID}); err == nil {
		return nil, &DuplicateError{Field: "house_admin", Value: houseAdminID}
	} else if err != ErrNotFound {
		return nil, err
	}
	if cashierID != "" {
		if _, err := findOne[House](ctx, s.db, collHouses, docstore.Query{"cashier_id": cashierID}); err == nil {
			return nil, &DuplicateError{Field: "cashier", Value: cashierID}
		} else if err != ErrNotFound {
			return nil, err
		}
	}

	house := &House{
		ID:           NewID(),
		Name:         name,
		HouseAdminID: houseAdminID,
		CashierID:    cashierID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.Insert(ctx, collHouses, house); err != nil {
		return nil, err
	}
	return house, nil
}

func (s *Store) GetHouse(ctx context.Context, id string) (*House, error) {
	return findOne[House](ctx, s.db, collHouses, docstore.Query{"id": id})
}

func (s *Store) ListHouses(ctx context.Context) ([]House, error) {
	return findAll[House](ctx, s.db, collHouses, docstore.Query{})
}

func (s *Store) SetHouseCashier(ctx context.Context, houseID, cashierID string) (*House, error) {
	if _, err := findOne[House](ctx, s.db, collHouses, docstore.Query{"cashier_id": cashierID}); err == nil {
		return nil, &DuplicateError{Field: "cashier", Value: cashierID}
	} else if err != ErrNotFound {
		return nil, err
	}
	house, err := s.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	house.CashierID = cashierID
	n, err := s.db.Update(ctx, collHouses, docstore.Query{"id": houseID}, house)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return house, nil
}
