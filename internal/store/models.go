package store

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAgent      = "agent"
	RoleHouseAdmin = "house_admin"
	RoleCashier    = "cashier"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAgent, RoleHouseAdmin, RoleCashier:
		return true
	default:
		return false
	}
}

// Account carries a user's package balance. Package never goes negative and
// is only ever written by ledger operations.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Package   decimal.Decimal `json:"package"`
	HouseID   string          `json:"house_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// House binds exactly one house-admin and at most one cashier under a
// globally unique name. The two linked accounts carry one mirrored balance.
type House struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	HouseAdminID string    `json:"house_admin_id"`
	CashierID    string    `json:"cashier_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recharge records a cash top-up converted into package units for a House.
// PackageAdded always equals Amount / SuperAdminCommission for the record's
// current values.
type Recharge struct {
	ID                   string          `json:"id"`
	HouseID              string          `json:"house_id"`
	Amount               decimal.Decimal `json:"amount"`
	SuperAdminCommission decimal.Decimal `json:"super_admin_commission"`
	PackageAdded         decimal.Decimal `json:"package_added"`
	RechargeBy           string          `json:"recharge_by"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AgentRecharge is the super-admin to agent top-up record.
type AgentRecharge struct {
	ID                   string          `json:"id"`
	AgentID              string          `json:"agent_id"`
	Amount               decimal.Decimal `json:"amount"`
	SuperAdminCommission decimal.Decimal `json:"super_admin_commission"`
	PackageAdded         decimal.Decimal `json:"package_added"`
	RechargeBy           string          `json:"recharge_by"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// RechargeRow is a read-side recharge joined with display names for
// dashboards and exports.
type RechargeRow struct {
	Recharge
	HouseName string `json:"house_name"`
	PayerName string `json:"payer_name"`
}

type AgentRechargeRow struct {
	AgentRecharge
	AgentName string `json:"agent_name"`
	PayerName string `json:"payer_name"`
}

type RechargeFilter struct {
	HouseID    string
	RechargeBy string
	From       time.Time
	To         time.Time
}

type AgentRechargeFilter struct {
	AgentID string
	From    time.Time
	To      time.Time
}
