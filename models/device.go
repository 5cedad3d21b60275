package models

import "time"

// Device records one installation of the app for the owning user.
// LastSyncAt is maintained by the sync engine after successful runs.
type Device struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Platform   string     `json:"platform"`
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`
	Version    int64      `json:"version"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// DeviceParams carries the caller-supplied fields for registering a device.
type DeviceParams struct {
	ID       string
	UserID   string
	Platform string
}

// DeviceChanges carries a partial update; nil fields are left untouched.
type DeviceChanges struct {
	Platform   *string
	LastSyncAt *time.Time
	DeletedAt  *time.Time
}

func (d Device) Row() Row {
	return Row{
		"id":           d.ID,
		"user_id":      d.UserID,
		"platform":     d.Platform,
		"last_sync_at": FormatTimePtr(d.LastSyncAt),
		"version":      d.Version,
		"created_at":   FormatTime(d.CreatedAt),
		"updated_at":   FormatTime(d.UpdatedAt),
		"deleted_at":   FormatTimePtr(d.DeletedAt),
	}
}

func DeviceFromRow(r Row) Device {
	return Device{
		ID:         r.String("id"),
		UserID:     r.String("user_id"),
		Platform:   r.String("platform"),
		LastSyncAt: r.TimePtr("last_sync_at"),
		Version:    r.Int64("version"),
		CreatedAt:  r.Time("created_at"),
		UpdatedAt:  r.Time("updated_at"),
		DeletedAt:  r.TimePtr("deleted_at"),
	}
}
