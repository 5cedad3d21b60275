package store

const (
	enqueueOutboxRecord = `
		INSERT INTO outbox (
			id,
			table_name,
			row_id,
			operation,
			payload,
			version,
			attempts,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, 0, ?);`

	getPendingOutboxRecords = `
		SELECT
			id,
			table_name,
			row_id,
			operation,
			payload,
			version,
			attempts,
			created_at
		FROM outbox
		ORDER BY created_at ASC, id ASC
		LIMIT ?;`

	countPendingOutboxRecords = `
		SELECT COUNT(*) FROM outbox;`

	incrementOutboxAttempts = `
		UPDATE outbox
		SET attempts = attempts + 1
		WHERE id = ?;`

	clearOutboxTable = `
		DELETE FROM outbox WHERE table_name = ?;`

	clearOutboxAll = `
		DELETE FROM outbox;`
)
