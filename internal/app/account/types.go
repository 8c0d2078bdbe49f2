package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	Name string
	Role string
}

type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Package   decimal.Decimal `json:"package"`
	HouseID   string          `json:"house_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Package   decimal.Decimal `json:"package"`
}
