package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"bingo-hall/internal/store"
)

// Ledger is the package-balance engine. Every operation that touches
// balances runs under the account-set lock for its full duration and applies
// all-or-nothing on top of the non-transactional document store: any state a
// write depends on is re-read under the lock, and balance snapshots are
// taken before each write and restored if a later step fails.
type Ledger struct {
	store *store.Store
	locks *lockTable

	// houseMu serializes house registration; the name uniqueness probe is
	// check-then-insert in the store and account locks do not cover it.
	houseMu sync.Mutex
}

func New(s *store.Store) *Ledger {
	return &Ledger{store: s, locks: newLockTable()}
}

// lockHouse acquires the account-set lock for a house and returns the house
// as read under that lock. If the house's account set changed between the
// initial read and the acquisition (a cashier was assigned mid-flight), the
// stale set is released and the acquisition retried.
func (l *Ledger) lockHouse(ctx context.Context, houseID string, extra ...string) (*store.House, func(), error) {
	for {
		house, err := l.store.GetHouse(ctx, houseID)
		if err != nil {
			return nil, nil, err
		}
		ids := append([]string{house.HouseAdminID, house.CashierID}, extra...)
		release := l.locks.Acquire(ids...)
		current, err := l.store.GetHouse(ctx, houseID)
		if err != nil {
			release()
			return nil, nil, err
		}
		if current.HouseAdminID == house.HouseAdminID && current.CashierID == house.CashierID {
			return current, release, nil
		}
		release()
	}
}

// CreateHouseRecharge converts a cash top-up into package units and credits
// the house. Agent payers are sufficiency-checked and debited; the
// super-admin is an unlimited source and is never debited. The cashier, when
// present, is mirrored to the admin's new balance.
func (l *Ledger) CreateHouseRecharge(ctx context.Context, houseID string, amount, commissionRate decimal.Decimal, payerID string) (*store.Recharge, error) {
	packageAdded, err := ToPackageUnits(amount, commissionRate)
	if err != nil {
		return nil, err
	}
	payer, err := l.store.GetAccount(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer.Role != store.RoleAgent && payer.Role != store.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	var extra []string
	if payer.Role == store.RoleAgent {
		extra = append(extra, payer.ID)
	}
	house, release, err := l.lockHouse(ctx, houseID, extra...)
	if err != nil {
		return nil, err
	}
	defer release()

	undo := l.newUndoLog()

	if payer.Role == store.RoleAgent {
		// Re-read under the lock; the pre-lock copy may be stale.
		payer, err = l.store.GetAccount(ctx, payerID)
		if err != nil {
			return nil, err
		}
		if payer.Package.LessThan(packageAdded) {
			return nil, &store.InsufficientBalanceError{
				AccountID: payer.ID,
				Balance:   payer.Package,
				Requested: packageAdded,
			}
		}
		if _, err := l.store.AdjustBalance(ctx, payer.ID, packageAdded.Neg()); err != nil {
			return nil, err
		}
		undo.balance(payer.ID, payer.Package)
	}

	admin, err := l.store.GetAccount(ctx, house.HouseAdminID)
	if err != nil {
		return nil, undo.rollback(ctx, err)
	}
	newAdminBal, err := l.store.AdjustBalance(ctx, admin.ID, packageAdded)
	if err != nil {
		return nil, undo.rollback(ctx, err)
	}
	undo.balance(admin.ID, admin.Package)

	if house.CashierID != "" {
		cashier, err := l.store.GetAccount(ctx, house.CashierID)
		if err != nil {
			return nil, undo.rollback(ctx, err)
		}
		if err := l.store.SetBalance(ctx, cashier.ID, newAdminBal); err != nil {
			return nil, undo.rollback(ctx, err)
		}
		undo.balance(cashier.ID, cashier.Package)
	}

	rec, err := l.store.InsertRecharge(ctx, houseID, amount, commissionRate, packageAdded, payer.ID)
	if err != nil {
		return nil, undo.rollback(ctx, err)
	}
	log.Info().Str("recharge_id", rec.ID).Str("house_id", houseID).
		Str("package_added", packageAdded.String()).Msg("house recharge applied")
	return rec, nil
}

// UpdateHouseRecharge retroactively corrects an applied recharge. Only the
// balance delta between the old and new packageAdded is applied, the cashier
// is mirrored to the admin's new value rather than delta-adjusted, and a
// downward correction the admin can no longer cover is rejected. Competing
// corrections to the same record serialize on the house's account-set lock,
// each computing its delta against the record as last committed.
//
// The original payer's debit is deliberately left untouched: corrections
// reconcile the house side only. Changing that would retroactively move
// payer balances and needs product sign-off first.
func (l *Ledger) UpdateHouseRecharge(ctx context.Context, rechargeID string, amount, commissionRate decimal.Decimal) (*store.Recharge, error) {
	newPackageAdded, err := ToPackageUnits(amount, commissionRate)
	if err != nil {
		return nil, err
	}
	rec, err := l.store.GetRecharge(ctx, rechargeID)
	if err != nil {
		return nil, err
	}
	house, release, err := l.lockHouse(ctx, rec.HouseID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the lock; a concurrent correction may have landed since
	// the first read, and the delta must be against the committed record.
	rec, err = l.store.GetRecharge(ctx, rechargeID)
	if err != nil {
		return nil, err
	}
	admin, err := l.store.GetAccount(ctx, house.HouseAdminID)
	if err != nil {
		return nil, err
	}
	delta := newPackageAdded.Sub(rec.PackageAdded)
	newAdminBal := admin.Package.Add(delta)
	if newAdminBal.IsNegative() {
		return nil, &store.InsufficientBalanceError{
			AccountID: admin.ID,
			Balance:   admin.Package,
			Requested: delta.Neg(),
		}
	}

	undo := l.newUndoLog()
	if err := l.store.SetBalance(ctx, admin.ID, newAdminBal); err != nil {
		return nil, err
	}
	undo.balance(admin.ID, admin.Package)

	if house.CashierID != "" {
		cashier, err := l.store.GetAccount(ctx, house.CashierID)
		if err != nil {
			return nil, undo.rollback(ctx, err)
		}
		if err := l.store.SetBalance(ctx, cashier.ID, newAdminBal); err != nil {
			return nil, undo.rollback(ctx, err)
		}
		undo.balance(cashier.ID, cashier.Package)
	}

	rec.Amount = amount
	rec.SuperAdminCommission = commissionRate
	rec.PackageAdded = newPackageAdded
	if err := l.store.UpdateRecharge(ctx, rec); err != nil {
		return nil, undo.rollback(ctx, err)
	}
	log.Info().Str("recharge_id", rec.ID).Str("delta", delta.String()).
		Msg("house recharge corrected")
	return rec, nil
}

// CreateAgentRecharge tops up an agent from the super-admin, which is an
// unlimited source: only the agent's balance moves.
func (l *Ledger) CreateAgentRecharge(ctx context.Context, agentID string, amount, commissionRate decimal.Decimal, payerID string) (*store.AgentRecharge, error) {
	packageAdded, err := ToPackageUnits(amount, commissionRate)
	if err != nil {
		return nil, err
	}
	target, err := l.store.GetAccount(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if target.Role != store.RoleAgent {
		return nil, ErrInvalidRole
	}
	payer, err := l.store.GetAccount(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer.Role != store.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	release := l.locks.Acquire(agentID)
	defer release()

	undo := l.newUndoLog()
	target, err = l.store.GetAccount(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if _, err := l.store.AdjustBalance(ctx, agentID, packageAdded); err != nil {
		return nil, err
	}
	undo.balance(agentID, target.Package)

	rec, err := l.store.InsertAgentRecharge(ctx, agentID, amount, commissionRate, packageAdded, payerID)
	if err != nil {
		return nil, undo.rollback(ctx, err)
	}
	log.Info().Str("recharge_id", rec.ID).Str("agent_id", agentID).
		Str("package_added", packageAdded.String()).Msg("agent recharge applied")
	return rec, nil
}

// CreateHouse registers a House binding one house-admin and optionally a
// cashier. Both accounts are stamped with the house ID; a given cashier is
// mirrored to the admin's balance. A failed stamp or mirror rolls the stamps
// back; the house row itself has no compensation since the store contract
// has no delete.
func (l *Ledger) CreateHouse(ctx context.Context, name, houseAdminID, cashierID string) (*store.House, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &validationError{cause: ErrValidation}
	}
	admin, err := l.store.GetAccount(ctx, houseAdminID)
	if err != nil {
		return nil, err
	}
	if admin.Role != store.RoleHouseAdmin {
		return nil, ErrInvalidRole
	}
	if admin.HouseID != "" {
		return nil, &store.DuplicateError{Field: "house_admin", Value: houseAdminID}
	}
	var cashier *store.Account
	if cashierID != "" {
		cashier, err = l.store.GetAccount(ctx, cashierID)
		if err != nil {
			return nil, err
		}
		if cashier.Role != store.RoleCashier {
			return nil, ErrInvalidRole
		}
		if cashier.HouseID != "" {
			return nil, &store.DuplicateError{Field: "cashier", Value: cashierID}
		}
	}

	l.houseMu.Lock()
	defer l.houseMu.Unlock()
	release := l.locks.Acquire(houseAdminID, cashierID)
	defer release()

	house, err := l.store.CreateHouse(ctx, name, houseAdminID, cashierID)
	if err != nil {
		return nil, err
	}
	undo := l.newUndoLog()
	if err := l.store.StampHouse(ctx, houseAdminID, house.ID); err != nil {
		return nil, err
	}
	undo.stamp(houseAdminID)
	if cashierID != "" {
		if err := l.store.StampHouse(ctx, cashierID, house.ID); err != nil {
			return nil, undo.rollback(ctx, err)
		}
		undo.stamp(cashierID)
		admin, err := l.store.GetAccount(ctx, houseAdminID)
		if err != nil {
			return nil, undo.rollback(ctx, err)
		}
		if err := l.store.SetBalance(ctx, cashierID, admin.Package); err != nil {
			return nil, undo.rollback(ctx, err)
		}
	}
	return house, nil
}

// AssignCashier binds a cashier to a house that has none yet and performs
// the first balance mirroring.
func (l *Ledger) AssignCashier(ctx context.Context, houseID, cashierID string) (*store.House, error) {
	house, err := l.store.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if house.CashierID != "" {
		return nil, ErrCashierPresent
	}
	cashier, err := l.store.GetAccount(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier.Role != store.RoleCashier {
		return nil, ErrInvalidRole
	}
	if cashier.HouseID != "" {
		return nil, &store.DuplicateError{Field: "cashier", Value: cashierID}
	}

	release := l.locks.Acquire(house.HouseAdminID, cashierID)
	defer release()

	// Re-check under the lock; a competing assignment may have won.
	house, err = l.store.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	if house.CashierID != "" {
		return nil, ErrCashierPresent
	}

	admin, err := l.store.GetAccount(ctx, house.HouseAdminID)
	if err != nil {
		return nil, err
	}
	undo := l.newUndoLog()
	if err := l.store.SetBalance(ctx, cashierID, admin.Package); err != nil {
		return nil, err
	}
	undo.balance(cashierID, cashier.Package)

	house, err = l.store.SetHouseCashier(ctx, houseID, cashierID)
	if err != nil {
		return nil, undo.rollback(ctx, err)
	}
	if err := l.store.StampHouse(ctx, cashierID, houseID); err != nil {
		return nil, undo.rollback(ctx, err)
	}
	return house, nil
}

// undoLog captures compensation steps so a failed multi-write operation can
// be unwound. Steps run in reverse order; a compensation that itself fails
// is logged, since at that point the store is refusing writes anyway.
type undoLog struct {
	store *store.Store
	steps []undoStep
}

type undoStep struct {
	accountID string
	restore   func(context.Context) error
}

func (l *Ledger) newUndoLog() *undoLog {
	return &undoLog{store: l.store}
}

// balance schedules a restore of the account's pre-write package balance.
func (u *undoLog) balance(accountID string, prev decimal.Decimal) {
	u.steps = append(u.steps, undoStep{
		accountID: accountID,
		restore: func(ctx context.Context) error {
			return u.store.SetBalance(ctx, accountID, prev)
		},
	})
}

// stamp schedules removal of the account's house binding.
func (u *undoLog) stamp(accountID string) {
	u.steps = append(u.steps, undoStep{
		accountID: accountID,
		restore: func(ctx context.Context) error {
			return u.store.StampHouse(ctx, accountID, "")
		},
	})
}

func (u *undoLog) rollback(ctx context.Context, cause error) error {
	for i := len(u.steps) - 1; i >= 0; i-- {
		step := u.steps[i]
		if err := step.restore(ctx); err != nil {
			log.Error().Err(err).Str("account_id", step.accountID).
				Msg("compensation failed")
		}
	}
	return cause
}
