package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("not_found")
	ErrDuplicate           = errors.New("duplicate_constraint")
	ErrInsufficientBalance = errors.New("insufficient_balance")
)

// DuplicateError names the uniqueness constraint that would be violated:
// "house name", "house_admin", or "cashier".
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// InsufficientBalanceError identifies the account whose package balance
// cannot cover the operation.
type InsufficientBalanceError struct {
	AccountID string
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s has insufficient package balance (balance %s, requested %s)",
		e.AccountID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
