package service

import (
	"context"

	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// OutboxQueue is the engine's view of the durable mutation queue.
// Implemented by [store.OutboxRepository].
type OutboxQueue interface {
	Enqueue(ctx context.Context, q store.Querier, params models.OutboxParams) (string, error)
	GetPending(ctx context.Context, q store.Querier, limit int) ([]models.OutboxRecord, error)
	MarkProcessed(ctx context.Context, q store.Querier, ids []string) error
	IncrementAttempts(ctx context.Context, q store.Querier, id string) error
	CountPending(ctx context.Context, q store.Querier) (int, error)
	ClearTable(ctx context.Context, q store.Querier, table string) error
	ClearAll(ctx context.Context, q store.Querier) error
}

// SyncRunner executes one full push-then-pull cycle. Implemented by
// [SyncEngine]; the scheduler holds only this narrow view.
type SyncRunner interface {
	RunSync(ctx context.Context) error
}
