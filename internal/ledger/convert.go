package ledger

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ToPackageUnits converts a cash amount into package units at the given
// commission rate: packageUnits = amount / rate. A smaller rate yields more
// package units per cash unit. Pure, no side effects; decimal division keeps
// the conversion re-derivable after repeated corrections.
func ToPackageUnits(amount, commissionRate decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, &validationError{cause: ErrInvalidAmount}
	}
	if !commissionRate.IsPositive() || commissionRate.GreaterThan(one) {
		return decimal.Zero, &validationError{cause: ErrInvalidCommission}
	}
	return amount.Div(commissionRate), nil
}
