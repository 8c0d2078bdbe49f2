package ledger

import "errors"

var (
	ErrValidation        = errors.New("validation_error")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidCommission = errors.New("invalid_commission")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrCashierPresent    = errors.New("cashier_already_present")
)

// InvalidAmount and InvalidCommission are both shape/range failures, so they
// report as validation errors to callers matching the broad class.
type validationError struct {
	cause error
}

func (e *validationError) Error() string { return e.cause.Error() }

func (e *validationError) Is(target error) bool {
	return target == ErrValidation || errors.Is(e.cause, target)
}
