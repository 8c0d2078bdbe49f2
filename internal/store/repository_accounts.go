package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bingo-hall/internal/docstore"
)

func (s *Store) CreateAccount(ctx context.Context, name, role string) (*Account, error) {
	now := time.Now().UTC()
	acc := &Account{
		ID:        NewID(),
		Name:      name,
		Role:      role,
		Package:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Insert(ctx, collAccounts, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*Account, error) {
	return findOne[Account](ctx, s.db, collAccounts, docstore.Query{"id": id})
}

func (s *Store) ListAccounts(ctx context.Context, role string) ([]Account, error) {
	q := docstore.Query{}
	if role != "" {
		q["role"] = role
	}
	return findAll[Account](ctx, s.db, collAccounts, q)
}

// AdjustBalance applies a signed delta to an account's package balance. The
// result may never be negative; callers needing an unlimited source simply
// do not debit it.
func (s *Store) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	newBal := acc.Package.Add(delta)
	if newBal.IsNegative() {
		return decimal.Zero, &InsufficientBalanceError{
			AccountID: id,
			Balance:   acc.Package,
			Requested: delta.Neg(),
		}
	}
	acc.Package = newBal
	if err := s.saveAccount(ctx, acc); err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// SetBalance overwrites an account's package balance. Used only by the
// cashier mirroring step; negative values are rejected outright.
func (s *Store) SetBalance(ctx context.Context, id string, value decimal.Decimal) error {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if value.IsNegative() {
		return &InsufficientBalanceError{
			AccountID: id,
			Balance:   acc.Package,
			Requested: value.Neg(),
		}
	}
	acc.Package = value
	return s.saveAccount(ctx, acc)
}

func (s *Store) StampHouse(ctx context.Context, accountID, houseID string) error {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	acc.HouseID = houseID
	return s.saveAccount(ctx, acc)
}

func (s *Store) saveAccount(ctx context.Context, acc *Account) error {
	acc.UpdatedAt = time.Now().UTC()
	n, err := s.db.Update(ctx, collAccounts, docstore.Query{"id": acc.ID}, acc)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
