package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalin/habitkeeper/models"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func TestValidate_HabitParams(t *testing.T) {
	v := NewEntityValidator()

	valid := models.HabitParams{UserID: "u1", Name: "Read", Cadence: models.CadenceDaily, Color: "#AABB01", SortOrder: 3}
	require.NoError(t, v.Validate(valid))

	tests := []struct {
		name    string
		mutate  func(p *models.HabitParams)
		wantErr error
	}{
		{"missing user", func(p *models.HabitParams) { p.UserID = "" }, ErrEmptyUserID},
		{"missing name", func(p *models.HabitParams) { p.Name = "" }, ErrEmptyName},
		{"bad cadence", func(p *models.HabitParams) { p.Cadence = "hourly" }, ErrInvalidCadence},
		{"bad color", func(p *models.HabitParams) { p.Color = "red" }, ErrInvalidColor},
		{"negative sort order", func(p *models.HabitParams) { p.SortOrder = -1 }, ErrInvalidSortOrder},
		{"sort order above cap", func(p *models.HabitParams) { p.SortOrder = 10001 }, ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := v.Validate(p)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidate_HabitChanges_NilFieldsSkipped(t *testing.T) {
	v := NewEntityValidator()

	require.NoError(t, v.Validate(models.HabitChanges{}))
	require.NoError(t, v.Validate(models.HabitChanges{Name: strPtr("Run"), SortOrder: i64Ptr(10000)}))

	assert.ErrorIs(t, v.Validate(models.HabitChanges{Name: strPtr("")}), ErrEmptyName)
	assert.ErrorIs(t, v.Validate(models.HabitChanges{Cadence: strPtr("yearly")}), ErrInvalidCadence)
}

func TestValidate_EntryParams(t *testing.T) {
	v := NewEntityValidator()

	require.NoError(t, v.Validate(models.EntryParams{UserID: "u1", Date: "2025-01-01"}))

	assert.ErrorIs(t, v.Validate(models.EntryParams{Date: "2025-01-01"}), ErrEmptyUserID)
	assert.ErrorIs(t, v.Validate(models.EntryParams{UserID: "u1", Date: "01.02.2025"}), ErrInvalidDate)
	assert.ErrorIs(t, v.Validate(models.EntryParams{UserID: "u1", Date: "2025-13-40"}), ErrInvalidDate)
}

func TestValidate_ReminderParams(t *testing.T) {
	v := NewEntityValidator()

	valid := models.ReminderParams{
		UserID:     "u1",
		TimeLocal:  "07:30",
		Timezone:   "Europe/Berlin",
		DaysOfWeek: []int{1, 3, 5},
	}
	require.NoError(t, v.Validate(valid))

	bad := valid
	bad.TimeLocal = "25:00"
	assert.ErrorIs(t, v.Validate(bad), ErrInvalidTime)

	bad = valid
	bad.TimeLocal = "7:30"
	assert.ErrorIs(t, v.Validate(bad), ErrInvalidTime)

	bad = valid
	bad.Timezone = "Atlantis/Nowhere"
	assert.ErrorIs(t, v.Validate(bad), ErrInvalidTimezone)

	bad = valid
	bad.DaysOfWeek = nil
	assert.ErrorIs(t, v.Validate(bad), ErrInvalidDaysOfWeek)

	bad = valid
	bad.DaysOfWeek = []int{0, 7}
	assert.ErrorIs(t, v.Validate(bad), ErrInvalidDaysOfWeek)
}

func TestValidate_DeviceParams(t *testing.T) {
	v := NewEntityValidator()

	require.NoError(t, v.Validate(models.DeviceParams{UserID: "u1", Platform: "ios"}))
	assert.ErrorIs(t, v.Validate(models.DeviceParams{UserID: "u1"}), ErrEmptyPlatform)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewEntityValidator()

	err := v.Validate(42)
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.False(t, errors.Is(err, ErrValidation))
}
