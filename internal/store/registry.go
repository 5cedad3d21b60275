package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/models"
)

// TableConfig describes one synchronizable table to the generic
// persistence layer: its column set and primary-key column.
type TableConfig struct {
	PrimaryKey string
	Columns    []string
}

// Registry maps table names to their persistence configuration. It is
// built once at startup and passed by reference into the mutation layer
// and the sync driver; there is deliberately no global instance.
type Registry struct {
	tables map[string]TableConfig
	logger *logger.Logger
}

// NewRegistry builds a registry from explicit table configurations.
func NewRegistry(tables map[string]TableConfig, log *logger.Logger) *Registry {
	return &Registry{tables: tables, logger: log}
}

// DefaultRegistry registers the four synchronizable entity tables.
func DefaultRegistry(log *logger.Logger) *Registry {
	common := []string{"id", "user_id", "version", "created_at", "updated_at", "deleted_at"}
	withCommon := func(cols ...string) []string {
		return append(append([]string{}, common...), cols...)
	}

	return NewRegistry(map[string]TableConfig{
		models.TableHabits:    {PrimaryKey: "id", Columns: withCommon("name", "cadence", "color", "sort_order")},
		models.TableEntries:   {PrimaryKey: "id", Columns: withCommon("habit_id", "date", "amount", "source")},
		models.TableReminders: {PrimaryKey: "id", Columns: withCommon("habit_id", "time_local", "days_of_week", "timezone", "is_enabled")},
		models.TableDevices:   {PrimaryKey: "id", Columns: withCommon("platform", "last_sync_at")},
	}, log)
}

// Lookup returns the configuration for table. An unknown name is a wiring
// defect and fails with ErrUnregisteredTable.
func (r *Registry) Lookup(table string) (TableConfig, error) {
	cfg, ok := r.tables[table]
	if !ok {
		return TableConfig{}, fmt.Errorf("%w: %s", ErrUnregisteredTable, table)
	}
	return cfg, nil
}

// Tables returns the registered table names in deterministic order.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpsertRecords inserts each row, or updates it in place by primary key if
// it already exists. A nil or empty rows slice is a no-op. Unregistered
// columns in a row are dropped rather than rejected, since remote payloads
// may carry fields this build does not know.
func (r *Registry) UpsertRecords(ctx context.Context, q Querier, table string, rows []models.Row) error {
	if len(rows) == 0 {
		return nil
	}

	cfg, err := r.Lookup(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		cols, vals := r.orderedValues(cfg, row)
		if len(cols) == 0 {
			continue
		}

		query, args, err := sq.Insert(table).
			Columns(cols...).
			Values(vals...).
			Suffix(upsertSuffix(cfg.PrimaryKey, cols)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert for %s: %w", table, err)
		}

		if _, err = q.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).
				Str("func", "Registry.UpsertRecords").
				Str("table", table).
				Str("row_id", row.String(cfg.PrimaryKey)).
				Msg("failed to upsert record")
			return fmt.Errorf("upsert into %s: %w", table, err)
		}
	}

	return nil
}

// InsertRecord appends one fully-populated row.
func (r *Registry) InsertRecord(ctx context.Context, q Querier, table string, row models.Row) error {
	cfg, err := r.Lookup(table)
	if err != nil {
		return err
	}

	cols, vals := r.orderedValues(cfg, row)
	query, args, err := sq.Insert(table).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return fmt.Errorf("build insert for %s: %w", table, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// UpdateRecord writes the supplied columns of the row identified by id.
func (r *Registry) UpdateRecord(ctx context.Context, q Querier, table, id string, changes models.Row) error {
	cfg, err := r.Lookup(table)
	if err != nil {
		return err
	}

	upd := sq.Update(table)
	cols, vals := r.orderedValues(cfg, changes)
	for i, col := range cols {
		if col == cfg.PrimaryKey {
			continue
		}
		upd = upd.Set(col, vals[i])
	}

	query, args, err := upd.Where(sq.Eq{cfg.PrimaryKey: id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update for %s: %w", table, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// SelectByID reads one row by primary key. Absence is reported as
// ErrRecordNotFound.
func (r *Registry) SelectByID(ctx context.Context, q Querier, table, id string) (models.Row, error) {
	cfg, err := r.Lookup(table)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select(cfg.Columns...).
		From(table).
		Where(sq.Eq{cfg.PrimaryKey: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select for %s: %w", table, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("select from %s: %w", table, err)
		}
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, id)
	}

	row, err := scanRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan row from %s: %w", table, err)
	}
	return row, rows.Err()
}

// SelectByUser reads every non-tombstoned row owned by userID.
func (r *Registry) SelectByUser(ctx context.Context, q Querier, table, userID string) ([]models.Row, error) {
	cfg, err := r.Lookup(table)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select(cfg.Columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy(cfg.PrimaryKey).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select for %s: %w", table, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row from %s: %w", table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// orderedValues projects row onto the registered column order, skipping
// columns the row does not carry.
func (r *Registry) orderedValues(cfg TableConfig, row models.Row) ([]string, []any) {
	cols := make([]string, 0, len(cfg.Columns))
	vals := make([]any, 0, len(cfg.Columns))
	for _, col := range cfg.Columns {
		v, ok := row[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return cols, vals
}

func upsertSuffix(pk string, cols []string) string {
	suffix := "ON CONFLICT(" + pk + ") DO UPDATE SET "
	first := true
	for _, col := range cols {
		if col == pk {
			continue
		}
		if !first {
			suffix += ", "
		}
		suffix += col + " = excluded." + col
		first = false
	}
	if first {
		return "ON CONFLICT(" + pk + ") DO NOTHING"
	}
	return suffix
}

func scanRow(rows *sql.Rows) (models.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err = rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(models.Row, len(cols))
	for i, col := range cols {
		switch v := raw[i].(type) {
		case []byte:
			row[col] = string(v)
		default:
			row[col] = v
		}
	}
	return row, nil
}

// IsNotFound reports whether err marks an absent record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows)
}
