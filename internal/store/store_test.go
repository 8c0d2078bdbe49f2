package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bingo-hall/internal/docstore"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := docstore.OpenFile("")
	if err != nil {
		t.Fatalf("open docstore: %v", err)
	}
	return New(db)
}

func TestAccountLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	acc, err := st.CreateAccount(ctx, "east-agent", RoleAgent)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.ID == "" {
		t.Fatal("account id is empty")
	}
	if !acc.Package.IsZero() {
		t.Fatalf("new account balance = %s, want 0", acc.Package)
	}

	got, err := st.GetAccount(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.Name != "east-agent" || got.Role != RoleAgent {
		t.Fatalf("got %+v", got)
	}

	if _, err := st.GetAccount(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing account error = %v, want not found", err)
	}
}

func TestAdjustBalance(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "agent", RoleAgent)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	newBal, err := st.AdjustBalance(ctx, acc.ID, dec(t, "150.25"))
	if err != nil {
		t.Fatalf("AdjustBalance: %v", err)
	}
	if !newBal.Equal(dec(t, "150.25")) {
		t.Fatalf("balance = %s, want 150.25", newBal)
	}

	newBal, err = st.AdjustBalance(ctx, acc.ID, dec(t, "-150.25"))
	if err != nil {
		t.Fatalf("AdjustBalance down: %v", err)
	}
	if !newBal.IsZero() {
		t.Fatalf("balance = %s, want 0", newBal)
	}

	_, err = st.AdjustBalance(ctx, acc.ID, dec(t, "-0.01"))
	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientBalanceError", err)
	}
	if insufficient.AccountID != acc.ID {
		t.Fatalf("error names account %s, want %s", insufficient.AccountID, acc.ID)
	}
	if got := balanceOf(t, st, acc.ID); !got.IsZero() {
		t.Fatalf("balance after rejected debit = %s, want 0", got)
	}
}

func TestSetBalanceRejectsNegative(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	acc, err := st.CreateAccount(ctx, "cashier", RoleCashier)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := st.SetBalance(ctx, acc.ID, dec(t, "42")); err != nil {
		t.Fatalf("SetBalance: %v", err)
	}
	if err := st.SetBalance(ctx, acc.ID, dec(t, "-1")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("negative set error = %v, want insufficient balance", err)
	}
	if got := balanceOf(t, st, acc.ID); !got.Equal(dec(t, "42")) {
		t.Fatalf("balance = %s, want 42", got)
	}
}

func TestCreateHouseUniquenessConstraints(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	admin1, _ := st.CreateAccount(ctx, "admin1", RoleHouseAdmin)
	admin2, _ := st.CreateAccount(ctx, "admin2", RoleHouseAdmin)
	cashier1, _ := st.CreateAccount(ctx, "cashier1", RoleCashier)

	if _, err := st.CreateHouse(ctx, "downtown", admin1.ID, cashier1.ID); err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}

	var dup *DuplicateError
	if _, err := st.CreateHouse(ctx, "downtown", admin2.ID, ""); !errors.As(err, &dup) || dup.Field != "house name" {
		t.Fatalf("duplicate name error = %v", err)
	}
	if _, err := st.CreateHouse(ctx, "uptown", admin1.ID, ""); !errors.As(err, &dup) || dup.Field != "house_admin" {
		t.Fatalf("duplicate admin error = %v", err)
	}
	if _, err := st.CreateHouse(ctx, "uptown", admin2.ID, cashier1.ID); !errors.As(err, &dup) || dup.Field != "cashier" {
		t.Fatalf("duplicate cashier error = %v", err)
	}
}

func TestSetHouseCashier(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	admin, _ := st.CreateAccount(ctx, "admin", RoleHouseAdmin)
	cashier, _ := st.CreateAccount(ctx, "cashier", RoleCashier)
	house, err := st.CreateHouse(ctx, "downtown", admin.ID, "")
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}

	updated, err := st.SetHouseCashier(ctx, house.ID, cashier.ID)
	if err != nil {
		t.Fatalf("SetHouseCashier: %v", err)
	}
	if updated.CashierID != cashier.ID {
		t.Fatalf("cashier = %q, want %q", updated.CashierID, cashier.ID)
	}

	admin2, _ := st.CreateAccount(ctx, "admin2", RoleHouseAdmin)
	house2, err := st.CreateHouse(ctx, "uptown", admin2.ID, "")
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}
	var dup *DuplicateError
	if _, err := st.SetHouseCashier(ctx, house2.ID, cashier.ID); !errors.As(err, &dup) || dup.Field != "cashier" {
		t.Fatalf("reused cashier error = %v", err)
	}
}

func TestListRechargesFiltersAndJoins(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	payer, _ := st.CreateAccount(ctx, "root", RoleSuperAdmin)
	admin, _ := st.CreateAccount(ctx, "admin", RoleHouseAdmin)
	house, err := st.CreateHouse(ctx, "downtown", admin.ID, "")
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}
	otherAdmin, _ := st.CreateAccount(ctx, "admin2", RoleHouseAdmin)
	otherHouse, err := st.CreateHouse(ctx, "uptown", otherAdmin.ID, "")
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}

	if _, err := st.InsertRecharge(ctx, house.ID, dec(t, "1000"), dec(t, "0.10"), dec(t, "10000"), payer.ID); err != nil {
		t.Fatalf("InsertRecharge: %v", err)
	}
	if _, err := st.InsertRecharge(ctx, otherHouse.ID, dec(t, "500"), dec(t, "0.10"), dec(t, "5000"), payer.ID); err != nil {
		t.Fatalf("InsertRecharge: %v", err)
	}

	rows, err := st.ListRecharges(ctx, RechargeFilter{HouseID: house.ID})
	if err != nil {
		t.Fatalf("ListRecharges: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].HouseName != "downtown" || rows[0].PayerName != "root" {
		t.Fatalf("joined names = %q/%q", rows[0].HouseName, rows[0].PayerName)
	}

	rows, err = st.ListRecharges(ctx, RechargeFilter{})
	if err != nil {
		t.Fatalf("ListRecharges all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	rows, err = st.ListRecharges(ctx, RechargeFilter{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("ListRecharges future: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0 for future window", len(rows))
	}
}

func TestListAgentRecharges(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	payer, _ := st.CreateAccount(ctx, "root", RoleSuperAdmin)
	agent, _ := st.CreateAccount(ctx, "east-agent", RoleAgent)

	if _, err := st.InsertAgentRecharge(ctx, agent.ID, dec(t, "1000"), dec(t, "0.20"), dec(t, "5000"), payer.ID); err != nil {
		t.Fatalf("InsertAgentRecharge: %v", err)
	}

	rows, err := st.ListAgentRecharges(ctx, AgentRechargeFilter{AgentID: agent.ID})
	if err != nil {
		t.Fatalf("ListAgentRecharges: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].AgentName != "east-agent" || rows[0].PayerName != "root" {
		t.Fatalf("joined names = %q/%q", rows[0].AgentName, rows[0].PayerName)
	}
}

func balanceOf(t *testing.T, st *Store, id string) decimal.Decimal {
	t.Helper()
	acc, err := st.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	return acc.Package
}
