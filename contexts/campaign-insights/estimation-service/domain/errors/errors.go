package errors

import "errors"

var (
	ErrInvalidParameters     = errors.New("campaign parameters are invalid")
	ErrZeroCampaignCost      = errors.New("campaign cost must be greater than zero")
	ErrInvalidBudget         = errors.New("total budget must be greater than zero")
	ErrForecastNotFound      = errors.New("forecast snapshot not found")
	ErrIdempotencyKeyMissing = errors.New("idempotency key is required")
	ErrIdempotencyConflict   = errors.New("idempotency key already used with different payload")
)
