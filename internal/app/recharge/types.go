package recharge

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateHouseInput struct {
	HouseID        string
	Amount         decimal.Decimal
	CommissionRate decimal.Decimal
}

type UpdateHouseInput struct {
	RechargeID     string
	Amount         decimal.Decimal
	CommissionRate decimal.Decimal
}

type CreateAgentInput struct {
	AgentID        string
	Amount         decimal.Decimal
	CommissionRate decimal.Decimal
}

type RechargeResponse struct {
	RechargeID     string          `json:"recharge_id"`
	HouseID        string          `json:"house_id"`
	Amount         decimal.Decimal `json:"amount"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	PackageAdded   decimal.Decimal `json:"package_added"`
	RechargeBy     string          `json:"recharge_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type AgentRechargeResponse struct {
	RechargeID     string          `json:"recharge_id"`
	AgentID        string          `json:"agent_id"`
	Amount         decimal.Decimal `json:"amount"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	PackageAdded   decimal.Decimal `json:"package_added"`
	RechargeBy     string          `json:"recharge_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ListFilter struct {
	HouseID    string
	RechargeBy string
	From       time.Time
	To         time.Time
}

type ListItem struct {
	RechargeResponse
	HouseName string `json:"house_name"`
	PayerName string `json:"payer_name"`
}

type ListResponse struct {
	Items []ListItem `json:"items"`
}

type AgentListFilter struct {
	AgentID string
	From    time.Time
	To      time.Time
}

type AgentListItem struct {
	AgentRechargeResponse
	AgentName string `json:"agent_name"`
	PayerName string `json:"payer_name"`
}

type AgentListResponse struct {
	Items []AgentListItem `json:"items"`
}
