package models

import "time"

// Reminder schedules a local notification for a habit. TimeLocal is a
// 24-hour HH:MM wall-clock time interpreted in Timezone; DaysOfWeek holds
// weekday numbers 0 (Sunday) through 6 and is persisted as a JSON array.
type Reminder struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	HabitID    string     `json:"habitId,omitempty"`
	TimeLocal  string     `json:"timeLocal"`
	DaysOfWeek []int      `json:"daysOfWeek"`
	Timezone   string     `json:"timezone"`
	IsEnabled  bool       `json:"isEnabled"`
	Version    int64      `json:"version"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// ReminderParams carries the caller-supplied fields for creating a
// reminder. IsEnabled defaults to true when nil.
type ReminderParams struct {
	ID         string
	UserID     string
	HabitID    string
	TimeLocal  string
	DaysOfWeek []int
	Timezone   string
	IsEnabled  *bool
}

// ReminderChanges carries a partial update; nil fields are left untouched.
type ReminderChanges struct {
	TimeLocal  *string
	DaysOfWeek []int
	Timezone   *string
	IsEnabled  *bool
	DeletedAt  *time.Time
}

func (m Reminder) Row() Row {
	return Row{
		"id":           m.ID,
		"user_id":      m.UserID,
		"habit_id":     m.HabitID,
		"time_local":   m.TimeLocal,
		"days_of_week": EncodeJSON(m.DaysOfWeek),
		"timezone":     m.Timezone,
		"is_enabled":   m.IsEnabled,
		"version":      m.Version,
		"created_at":   FormatTime(m.CreatedAt),
		"updated_at":   FormatTime(m.UpdatedAt),
		"deleted_at":   FormatTimePtr(m.DeletedAt),
	}
}

func ReminderFromRow(r Row) Reminder {
	return Reminder{
		ID:         r.String("id"),
		UserID:     r.String("user_id"),
		HabitID:    r.String("habit_id"),
		TimeLocal:  r.String("time_local"),
		DaysOfWeek: DecodeIntSlice(r.String("days_of_week")),
		Timezone:   r.String("timezone"),
		IsEnabled:  r.Bool("is_enabled"),
		Version:    r.Int64("version"),
		CreatedAt:  r.Time("created_at"),
		UpdatedAt:  r.Time("updated_at"),
		DeletedAt:  r.TimePtr("deleted_at"),
	}
}
