package adapter

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/dkhalin/habitkeeper/models"
)

// buildMutations maps outbox records onto the wire mutation shape: entity
// id, target table, operation, the post-mutation version, and the payload
// snapshot re-parsed as JSON.
func buildMutations(records []models.OutboxRecord) []models.RemoteMutation {
	mutations := make([]models.RemoteMutation, 0, len(records))
	for _, rec := range records {
		payload := json.RawMessage(rec.Payload)
		if !json.Valid(payload) {
			// A corrupted snapshot is still transmitted, wrapped as a JSON
			// string, so the record can leave the queue.
			payload, _ = json.Marshal(rec.Payload)
		}
		mutations = append(mutations, models.RemoteMutation{
			ID:        rec.RowID,
			Table:     rec.TableName,
			Operation: rec.Operation,
			Version:   rec.Version,
			Payload:   payload,
		})
	}
	return mutations
}

// normalizeRemoteRow converts one remote row into local column shape.
// Remote field names arrive camelCased; structurally invalid rows (missing
// id or owning user) are rejected. Missing version defaults to 1, missing
// timestamps to now.
func normalizeRemoteRow(remote models.Row, now time.Time) (models.Row, bool) {
	row := make(models.Row, len(remote))
	for key, value := range remote {
		row[camelToSnake(key)] = normalizeValue(value)
	}

	if row.String("id") == "" || row.String("user_id") == "" {
		return nil, false
	}

	if row.Int64("version") <= 0 {
		row["version"] = int64(1)
	}
	if !row.Has("created_at") || row.String("created_at") == "" {
		row["created_at"] = models.FormatTime(now)
	}
	if !row.Has("updated_at") || row.String("updated_at") == "" {
		row["updated_at"] = models.FormatTime(now)
	}

	return row, true
}

// normalizeValue flattens JSON-decoded values into the scalar forms the
// persistence layer stores: arrays and objects become JSON text.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case []any, map[string]any:
		return models.EncodeJSON(value)
	case float64:
		if value == float64(int64(value)) {
			return int64(value)
		}
		return value
	default:
		return v
	}
}

func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
