package errorvalues

import "errors"

var (
	ErrHabitExists      = errors.New("habit with such name already exists")
	ErrHabitNotFound    = errors.New("habit not found")
	ErrInvalidTimeRange = errors.New("timeTo cannot be before timeFrom")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExchangeFailed   = errors.New("external provider exchange failed")
)
