package service

import (
	"context"
	"time"

	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/models"
)

// CreateHabit validates and persists a new habit at version 1 and
// enqueues an insert outbox record.
func (m *Mutations) CreateHabit(ctx context.Context, params models.HabitParams, opts ...MutationOption) (*models.Habit, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(params); err != nil {
		return nil, err
	}

	now := time.Now()
	habit := models.Habit{
		ID:        orGenerateID(params.ID),
		UserID:    params.UserID,
		Name:      params.Name,
		Cadence:   params.Cadence,
		Color:     params.Color,
		SortOrder: params.SortOrder,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out models.Habit
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.createRow(ctx, q, models.TableHabits, habit.Row())
		if err != nil {
			return err
		}
		out = models.HabitFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHabit applies a partial update to an existing habit.
func (m *Mutations) UpdateHabit(ctx context.Context, id string, changes models.HabitChanges, opts ...MutationOption) (*models.Habit, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(changes); err != nil {
		return nil, err
	}

	row := models.Row{}
	if changes.Name != nil {
		row["name"] = *changes.Name
	}
	if changes.Cadence != nil {
		row["cadence"] = *changes.Cadence
	}
	if changes.Color != nil {
		row["color"] = *changes.Color
	}
	if changes.SortOrder != nil {
		row["sort_order"] = *changes.SortOrder
	}
	if changes.DeletedAt != nil {
		row["deleted_at"] = models.FormatTime(*changes.DeletedAt)
	}

	var out models.Habit
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.updateRow(ctx, q, models.TableHabits, "habit", id, row)
		if err != nil {
			return err
		}
		out = models.HabitFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteHabit soft-deletes a habit, returning nil without error when the
// record is already gone.
func (m *Mutations) DeleteHabit(ctx context.Context, id string, opts ...MutationOption) (*models.Habit, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	var out *models.Habit
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.softDeleteRow(ctx, q, models.TableHabits, "habit", id)
		if err != nil || stored == nil {
			return err
		}
		habit := models.HabitFromRow(stored)
		out = &habit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEntry validates and persists a new entry. Amount defaults to 0,
// source to "local".
func (m *Mutations) CreateEntry(ctx context.Context, params models.EntryParams, opts ...MutationOption) (*models.Entry, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(params); err != nil {
		return nil, err
	}

	amount := int64(0)
	if params.Amount != nil {
		amount = *params.Amount
	}
	source := params.Source
	if source == "" {
		source = models.EntrySourceLocal
	}

	now := time.Now()
	entry := models.Entry{
		ID:        orGenerateID(params.ID),
		UserID:    params.UserID,
		HabitID:   params.HabitID,
		Date:      params.Date,
		Amount:    amount,
		Source:    source,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out models.Entry
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.createRow(ctx, q, models.TableEntries, entry.Row())
		if err != nil {
			return err
		}
		out = models.EntryFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEntry applies a partial update to an existing entry.
func (m *Mutations) UpdateEntry(ctx context.Context, id string, changes models.EntryChanges, opts ...MutationOption) (*models.Entry, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(changes); err != nil {
		return nil, err
	}

	row := models.Row{}
	if changes.Date != nil {
		row["date"] = *changes.Date
	}
	if changes.Amount != nil {
		row["amount"] = *changes.Amount
	}
	if changes.Source != nil {
		row["source"] = *changes.Source
	}
	if changes.DeletedAt != nil {
		row["deleted_at"] = models.FormatTime(*changes.DeletedAt)
	}

	var out models.Entry
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.updateRow(ctx, q, models.TableEntries, "entry", id, row)
		if err != nil {
			return err
		}
		out = models.EntryFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry soft-deletes an entry.
func (m *Mutations) DeleteEntry(ctx context.Context, id string, opts ...MutationOption) (*models.Entry, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	var out *models.Entry
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.softDeleteRow(ctx, q, models.TableEntries, "entry", id)
		if err != nil || stored == nil {
			return err
		}
		entry := models.EntryFromRow(stored)
		out = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReminder validates and persists a new reminder. IsEnabled
// defaults to true.
func (m *Mutations) CreateReminder(ctx context.Context, params models.ReminderParams, opts ...MutationOption) (*models.Reminder, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(params); err != nil {
		return nil, err
	}

	enabled := true
	if params.IsEnabled != nil {
		enabled = *params.IsEnabled
	}

	now := time.Now()
	reminder := models.Reminder{
		ID:         orGenerateID(params.ID),
		UserID:     params.UserID,
		HabitID:    params.HabitID,
		TimeLocal:  params.TimeLocal,
		DaysOfWeek: params.DaysOfWeek,
		Timezone:   params.Timezone,
		IsEnabled:  enabled,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var out models.Reminder
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.createRow(ctx, q, models.TableReminders, reminder.Row())
		if err != nil {
			return err
		}
		out = models.ReminderFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReminder applies a partial update to an existing reminder.
func (m *Mutations) UpdateReminder(ctx context.Context, id string, changes models.ReminderChanges, opts ...MutationOption) (*models.Reminder, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(changes); err != nil {
		return nil, err
	}

	row := models.Row{}
	if changes.TimeLocal != nil {
		row["time_local"] = *changes.TimeLocal
	}
	if changes.DaysOfWeek != nil {
		row["days_of_week"] = models.EncodeJSON(changes.DaysOfWeek)
	}
	if changes.Timezone != nil {
		row["timezone"] = *changes.Timezone
	}
	if changes.IsEnabled != nil {
		row["is_enabled"] = *changes.IsEnabled
	}
	if changes.DeletedAt != nil {
		row["deleted_at"] = models.FormatTime(*changes.DeletedAt)
	}

	var out models.Reminder
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.updateRow(ctx, q, models.TableReminders, "reminder", id, row)
		if err != nil {
			return err
		}
		out = models.ReminderFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReminder soft-deletes a reminder.
func (m *Mutations) DeleteReminder(ctx context.Context, id string, opts ...MutationOption) (*models.Reminder, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	var out *models.Reminder
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.softDeleteRow(ctx, q, models.TableReminders, "reminder", id)
		if err != nil || stored == nil {
			return err
		}
		reminder := models.ReminderFromRow(stored)
		out = &reminder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDevice registers this installation for the owning user.
func (m *Mutations) CreateDevice(ctx context.Context, params models.DeviceParams, opts ...MutationOption) (*models.Device, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(params); err != nil {
		return nil, err
	}

	now := time.Now()
	device := models.Device{
		ID:        orGenerateID(params.ID),
		UserID:    params.UserID,
		Platform:  params.Platform,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out models.Device
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.createRow(ctx, q, models.TableDevices, device.Row())
		if err != nil {
			return err
		}
		out = models.DeviceFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDevice applies a partial update to an existing device.
func (m *Mutations) UpdateDevice(ctx context.Context, id string, changes models.DeviceChanges, opts ...MutationOption) (*models.Device, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	if err = m.validate(changes); err != nil {
		return nil, err
	}

	row := models.Row{}
	if changes.Platform != nil {
		row["platform"] = *changes.Platform
	}
	if changes.LastSyncAt != nil {
		row["last_sync_at"] = models.FormatTime(*changes.LastSyncAt)
	}
	if changes.DeletedAt != nil {
		row["deleted_at"] = models.FormatTime(*changes.DeletedAt)
	}

	var out models.Device
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.updateRow(ctx, q, models.TableDevices, "device", id, row)
		if err != nil {
			return err
		}
		out = models.DeviceFromRow(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDevice soft-deletes a device registration.
func (m *Mutations) DeleteDevice(ctx context.Context, id string, opts ...MutationOption) (*models.Device, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	var out *models.Device
	err = m.exec(ctx, db, opts, func(q store.Querier) error {
		stored, err := m.softDeleteRow(ctx, q, models.TableDevices, "device", id)
		if err != nil || stored == nil {
			return err
		}
		device := models.DeviceFromRow(stored)
		out = &device
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
