package adapter

import (
	"context"

	"github.com/dkhalin/habitkeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SessionProvider answers the only question the sync driver asks of the
// authentication layer: is there a signed-in session, and what bearer
// token does it carry.
type SessionProvider interface {
	Active() bool
	Token() string
}

// RemoteDriver is the wire-format boundary of the sync subsystem. Push
// transmits a batch of outbox records; Pull fetches and applies remote
// deltas and advances the per-table cursors.
type RemoteDriver interface {
	Push(ctx context.Context, records []models.OutboxRecord) error
	Pull(ctx context.Context) error
}
