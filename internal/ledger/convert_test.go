package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToPackageUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{name: "ten percent", amount: "1000", rate: "0.10", want: "10000"},
		{name: "twenty percent", amount: "1000", rate: "0.20", want: "5000"},
		{name: "full rate", amount: "250", rate: "1", want: "250"},
		{name: "fractional amount", amount: "99.50", rate: "0.25", want: "398"},
		{name: "small commission yields more units", amount: "10", rate: "0.01", want: "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPackageUnits(dec(tt.amount), dec(tt.rate))
			if err != nil {
				t.Fatalf("ToPackageUnits(%s, %s) error = %v", tt.amount, tt.rate, err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("ToPackageUnits(%s, %s) = %s, want %s", tt.amount, tt.rate, got, tt.want)
			}
		})
	}
}

func TestToPackageUnitsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   error
	}{
		{name: "zero amount", amount: "0", rate: "0.10", want: ErrInvalidAmount},
		{name: "negative amount", amount: "-5", rate: "0.10", want: ErrInvalidAmount},
		{name: "zero rate", amount: "100", rate: "0", want: ErrInvalidCommission},
		{name: "negative rate", amount: "100", rate: "-0.10", want: ErrInvalidCommission},
		{name: "rate above one", amount: "100", rate: "1.01", want: ErrInvalidCommission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToPackageUnits(dec(tt.amount), dec(tt.rate))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error %v does not report as validation error", err)
			}
		})
	}
}

func TestToPackageUnitsRederivable(t *testing.T) {
	// The stored packageAdded must equal a fresh conversion from the
	// record's current amount and rate, including awkward rates.
	amounts := []string{"1000", "333.33", "0.01", "987654.32"}
	rates := []string{"0.10", "0.07", "0.33", "1"}
	for _, a := range amounts {
		for _, r := range rates {
			first, err := ToPackageUnits(dec(a), dec(r))
			if err != nil {
				t.Fatalf("ToPackageUnits(%s, %s) error = %v", a, r, err)
			}
			second, err := ToPackageUnits(dec(a), dec(r))
			if err != nil {
				t.Fatalf("ToPackageUnits(%s, %s) error = %v", a, r, err)
			}
			if !first.Equal(second) {
				t.Fatalf("conversion of (%s, %s) not stable: %s vs %s", a, r, first, second)
			}
		}
	}
}
