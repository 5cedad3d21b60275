// Package validators holds the field-level validation rules for every
// synchronizable entity kind. Validation runs before any storage access,
// so a failing call leaves no trace in the database or the outbox.
package validators

import (
	"regexp"
	"time"

	"github.com/dkhalin/habitkeeper/models"
)

var (
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	timePattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

const (
	sortOrderMin = 0
	sortOrderMax = 10000
)

// EntityValidator validates create parameters and partial updates for all
// four entity kinds.
type EntityValidator struct{}

// NewEntityValidator constructs the validator.
func NewEntityValidator() *EntityValidator {
	return &EntityValidator{}
}

// Validate dispatches on the concrete params/changes type. Unknown types
// fail with ErrUnsupportedType.
func (v *EntityValidator) Validate(obj any) error {
	switch value := obj.(type) {
	case models.HabitParams:
		return v.validateHabitParams(value)
	case *models.HabitParams:
		return v.validateHabitParams(*value)

	case models.HabitChanges:
		return v.validateHabitChanges(value)
	case *models.HabitChanges:
		return v.validateHabitChanges(*value)

	case models.EntryParams:
		return v.validateEntryParams(value)
	case *models.EntryParams:
		return v.validateEntryParams(*value)

	case models.EntryChanges:
		return v.validateEntryChanges(value)
	case *models.EntryChanges:
		return v.validateEntryChanges(*value)

	case models.ReminderParams:
		return v.validateReminderParams(value)
	case *models.ReminderParams:
		return v.validateReminderParams(*value)

	case models.ReminderChanges:
		return v.validateReminderChanges(value)
	case *models.ReminderChanges:
		return v.validateReminderChanges(*value)

	case models.DeviceParams:
		return v.validateDeviceParams(value)
	case *models.DeviceParams:
		return v.validateDeviceParams(*value)

	case models.DeviceChanges:
		return v.validateDeviceChanges(value)
	case *models.DeviceChanges:
		return v.validateDeviceChanges(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *EntityValidator) validateHabitParams(p models.HabitParams) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if !isValidCadence(p.Cadence) {
		return ErrInvalidCadence
	}
	if p.Color != "" && !colorPattern.MatchString(p.Color) {
		return ErrInvalidColor
	}
	if p.SortOrder < sortOrderMin || p.SortOrder > sortOrderMax {
		return ErrInvalidSortOrder
	}
	return nil
}

func (v *EntityValidator) validateHabitChanges(c models.HabitChanges) error {
	if c.Name != nil && *c.Name == "" {
		return ErrEmptyName
	}
	if c.Cadence != nil && !isValidCadence(*c.Cadence) {
		return ErrInvalidCadence
	}
	if c.Color != nil && *c.Color != "" && !colorPattern.MatchString(*c.Color) {
		return ErrInvalidColor
	}
	if c.SortOrder != nil && (*c.SortOrder < sortOrderMin || *c.SortOrder > sortOrderMax) {
		return ErrInvalidSortOrder
	}
	return nil
}

func (v *EntityValidator) validateEntryParams(p models.EntryParams) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if !isValidDate(p.Date) {
		return ErrInvalidDate
	}
	return nil
}

func (v *EntityValidator) validateEntryChanges(c models.EntryChanges) error {
	if c.Date != nil && !isValidDate(*c.Date) {
		return ErrInvalidDate
	}
	return nil
}

func (v *EntityValidator) validateReminderParams(p models.ReminderParams) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if !timePattern.MatchString(p.TimeLocal) {
		return ErrInvalidTime
	}
	if !isValidTimezone(p.Timezone) {
		return ErrInvalidTimezone
	}
	if !isValidDaysOfWeek(p.DaysOfWeek) {
		return ErrInvalidDaysOfWeek
	}
	return nil
}

func (v *EntityValidator) validateReminderChanges(c models.ReminderChanges) error {
	if c.TimeLocal != nil && !timePattern.MatchString(*c.TimeLocal) {
		return ErrInvalidTime
	}
	if c.Timezone != nil && !isValidTimezone(*c.Timezone) {
		return ErrInvalidTimezone
	}
	if c.DaysOfWeek != nil && !isValidDaysOfWeek(c.DaysOfWeek) {
		return ErrInvalidDaysOfWeek
	}
	return nil
}

func (v *EntityValidator) validateDeviceParams(p models.DeviceParams) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.Platform == "" {
		return ErrEmptyPlatform
	}
	return nil
}

func (v *EntityValidator) validateDeviceChanges(c models.DeviceChanges) error {
	if c.Platform != nil && *c.Platform == "" {
		return ErrEmptyPlatform
	}
	return nil
}

func isValidCadence(cadence string) bool {
	switch cadence {
	case models.CadenceDaily, models.CadenceWeekly, models.CadenceMonthly:
		return true
	default:
		return false
	}
}

func isValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func isValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func isValidDaysOfWeek(days []int) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}
