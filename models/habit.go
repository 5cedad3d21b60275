package models

import "time"

// Habit is the primary synchronizable entity: a recurring activity the
// user tracks. Rows are soft-deleted; DeletedAt marks a tombstone that
// stays present locally and remotely until a retention process purges it.
type Habit struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Cadence   string     `json:"cadence"`
	Color     string     `json:"color"`
	SortOrder int64      `json:"sortOrder"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HabitParams carries the caller-supplied fields for creating a habit.
// ID is optional; when empty a client id is generated.
type HabitParams struct {
	ID        string
	UserID    string
	Name      string
	Cadence   string
	Color     string
	SortOrder int64
}

// HabitChanges carries a partial update; nil fields are left untouched.
type HabitChanges struct {
	Name      *string
	Cadence   *string
	Color     *string
	SortOrder *int64
	DeletedAt *time.Time
}

// Row converts the habit to its persisted column form.
func (h Habit) Row() Row {
	return Row{
		"id":         h.ID,
		"user_id":    h.UserID,
		"name":       h.Name,
		"cadence":    h.Cadence,
		"color":      h.Color,
		"sort_order": h.SortOrder,
		"version":    h.Version,
		"created_at": FormatTime(h.CreatedAt),
		"updated_at": FormatTime(h.UpdatedAt),
		"deleted_at": FormatTimePtr(h.DeletedAt),
	}
}

// HabitFromRow reconstructs a habit from its persisted column form.
func HabitFromRow(r Row) Habit {
	return Habit{
		ID:        r.String("id"),
		UserID:    r.String("user_id"),
		Name:      r.String("name"),
		Cadence:   r.String("cadence"),
		Color:     r.String("color"),
		SortOrder: r.Int64("sort_order"),
		Version:   r.Int64("version"),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
		DeletedAt: r.TimePtr("deleted_at"),
	}
}
