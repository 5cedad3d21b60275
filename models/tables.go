package models

// Table names of the synchronizable entity tables. The outbox and the
// cursor store key their rows by these names, so they double as the
// wire-level table identifiers sent to the remote endpoint.
const (
	TableHabits    = "habits"
	TableEntries   = "entries"
	TableReminders = "reminders"
	TableDevices   = "devices"
)

// SyncTables lists every table that participates in push/pull replication,
// in the order tables are pulled.
var SyncTables = []string{TableHabits, TableEntries, TableReminders, TableDevices}

// Cadence values accepted for Habit.Cadence.
const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)
