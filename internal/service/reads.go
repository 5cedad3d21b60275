package service

import (
	"context"

	"github.com/dkhalin/habitkeeper/models"
)

// The list reads expose the live local state per user: tombstoned rows are
// excluded, ordered by id. They read whatever the last mutation or pull
// left behind; rows queued in the outbox are already reflected here.

func (m *Mutations) listRows(ctx context.Context, table, userID string) ([]models.Row, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}
	return m.storages.Registry.SelectByUser(ctx, db, table, userID)
}

// ListHabits returns the user's non-deleted habits.
func (m *Mutations) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	rows, err := m.listRows(ctx, models.TableHabits, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Habit, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.HabitFromRow(r))
	}
	return out, nil
}

// ListEntries returns the user's non-deleted entries.
func (m *Mutations) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	rows, err := m.listRows(ctx, models.TableEntries, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.EntryFromRow(r))
	}
	return out, nil
}

// ListReminders returns the user's non-deleted reminders.
func (m *Mutations) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := m.listRows(ctx, models.TableReminders, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Reminder, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ReminderFromRow(r))
	}
	return out, nil
}

// ListDevices returns the user's non-deleted devices.
func (m *Mutations) ListDevices(ctx context.Context, userID string) ([]models.Device, error) {
	rows, err := m.listRows(ctx, models.TableDevices, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Device, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DeviceFromRow(r))
	}
	return out, nil
}
