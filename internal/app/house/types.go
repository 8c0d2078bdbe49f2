package house

import "time"

type CreateInput struct {
	Name         string
	HouseAdminID string
	CashierID    string
}

type AssignCashierInput struct {
	HouseID   string
	CashierID string
}

type HouseResponse struct {
	HouseID      string    `json:"house_id"`
	Name         string    `json:"name"`
	HouseAdminID string    `json:"house_admin_id"`
	CashierID    string    `json:"cashier_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
