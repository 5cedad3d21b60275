package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every validation failure; callers check it
// with errors.Is to distinguish bad input from infrastructure failures.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyUserID       = fmt.Errorf("%w: user id is required", ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidCadence    = fmt.Errorf("%w: cadence must be daily, weekly or monthly", ErrValidation)
	ErrInvalidColor      = fmt.Errorf("%w: color must be a #RRGGBB hex value", ErrValidation)
	ErrInvalidSortOrder  = fmt.Errorf("%w: sort order must be within [0, 10000]", ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrInvalidTime       = fmt.Errorf("%w: time must be HH:MM in 24-hour format", ErrValidation)
	ErrInvalidTimezone   = fmt.Errorf("%w: timezone must be a valid IANA name", ErrValidation)
	ErrInvalidDaysOfWeek = fmt.Errorf("%w: days of week must be a non-empty subset of 0..6", ErrValidation)
	ErrEmptyPlatform     = fmt.Errorf("%w: platform is required", ErrValidation)
)
