package models

import "time"

// EntrySourceLocal is the default provenance recorded for entries created
// on this device.
const EntrySourceLocal = "local"

// Entry is a single logged occurrence of a habit on a calendar date.
// Date is a plain YYYY-MM-DD string; the owning habit reference is
// optional so free-standing entries can be logged.
type Entry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	HabitID   string     `json:"habitId,omitempty"`
	Date      string     `json:"date"`
	Amount    int64      `json:"amount"`
	Source    string     `json:"source"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// EntryParams carries the caller-supplied fields for creating an entry.
// Amount defaults to 0 and Source to [EntrySourceLocal] when unset.
type EntryParams struct {
	ID      string
	UserID  string
	HabitID string
	Date    string
	Amount  *int64
	Source  string
}

// EntryChanges carries a partial update; nil fields are left untouched.
type EntryChanges struct {
	Date      *string
	Amount    *int64
	Source    *string
	DeletedAt *time.Time
}

func (e Entry) Row() Row {
	return Row{
		"id":         e.ID,
		"user_id":    e.UserID,
		"habit_id":   e.HabitID,
		"date":       e.Date,
		"amount":     e.Amount,
		"source":     e.Source,
		"version":    e.Version,
		"created_at": FormatTime(e.CreatedAt),
		"updated_at": FormatTime(e.UpdatedAt),
		"deleted_at": FormatTimePtr(e.DeletedAt),
	}
}

func EntryFromRow(r Row) Entry {
	return Entry{
		ID:        r.String("id"),
		UserID:    r.String("user_id"),
		HabitID:   r.String("habit_id"),
		Date:      r.String("date"),
		Amount:    r.Int64("amount"),
		Source:    r.String("source"),
		Version:   r.Int64("version"),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
		DeletedAt: r.TimePtr("deleted_at"),
	}
}
