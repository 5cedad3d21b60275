package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/models"
)

// HTTPClientConfig configures the HTTP sync driver.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// httpRemoteDriver talks JSON over HTTP to the push/pull endpoints and
// owns the translation between outbox records, remote rows and local
// columns. It is the only component that writes cursors.
type httpRemoteDriver struct {
	client   *resty.Client
	session  SessionProvider
	storages *store.ClientStorages
	logger   *logger.Logger
}

// NewHTTPRemoteDriver wires the resty client against the configured base
// URL. The storage layer is used to apply pulled (and push-enriched) rows
// back into local tables and to advance cursors.
func NewHTTPRemoteDriver(cfg HTTPClientConfig, session SessionProvider, storages *store.ClientStorages, log *logger.Logger) RemoteDriver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRemoteDriver{client: cli, session: session, storages: storages, logger: log}
}

// Push transmits the batch as a single request. On a well-formed success
// response carrying server-enriched rows, those rows are applied back into
// local storage so the client sees server-side defaulting it would
// otherwise miss.
func (h *httpRemoteDriver) Push(ctx context.Context, records []models.OutboxRecord) error {
	if !h.session.Active() {
		return ErrSignedOut
	}
	db, err := h.storages.Provider.Acquire()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	req := models.PushRequest{Mutations: buildMutations(records)}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/push")
	if err != nil {
		return fmt.Errorf("%w: push request: %v", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var pushResp models.PushResponse
	if err = json.Unmarshal(resp.Body(), &pushResp); err != nil {
		return fmt.Errorf("%w: decode push response: %v", ErrRemote, err)
	}
	if !pushResp.Success {
		return fmt.Errorf("%w: %s", ErrRemote, remoteMessage(pushResp.Error))
	}

	if len(pushResp.Updated) == 0 {
		return nil
	}

	now := time.Now()
	return db.WithTx(ctx, func(q store.Querier) error {
		for table, rows := range pushResp.Updated {
			if err := h.applyRows(ctx, q, table, rows, now); err != nil {
				return fmt.Errorf("apply pushed updates for %s: %w", table, err)
			}
		}
		return nil
	})
}

// Pull sends the current per-table cursor map, applies the returned rows
// table by table, and then advances or clears each table's cursor. A
// table whose response omits a cursor is reset to pull from scratch next
// run.
func (h *httpRemoteDriver) Pull(ctx context.Context) error {
	if !h.session.Active() {
		return ErrSignedOut
	}
	db, err := h.storages.Provider.Acquire()
	if err != nil {
		return err
	}

	cursors, err := h.storages.Cursors.GetAll(ctx, db, models.SyncTables)
	if err != nil {
		return fmt.Errorf("collect cursors: %w", err)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PullRequest{Cursors: cursors}).
		Post("/api/sync/pull")
	if err != nil {
		return fmt.Errorf("%w: pull request: %v", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var pullResp models.PullResponse
	if err = json.Unmarshal(resp.Body(), &pullResp); err != nil {
		return fmt.Errorf("%w: decode pull response: %v", ErrRemote, err)
	}
	if !pullResp.Success {
		return fmt.Errorf("%w: %s", ErrRemote, remoteMessage(pullResp.Error))
	}

	now := time.Now()
	return db.WithTx(ctx, func(q store.Querier) error {
		for _, table := range models.SyncTables {
			if err := h.applyRows(ctx, q, table, pullResp.Records[table], now); err != nil {
				return fmt.Errorf("apply pulled rows for %s: %w", table, err)
			}
		}

		// Cursors move only after every table's rows are in place, so a
		// failed run re-pulls instead of skipping records.
		for _, table := range models.SyncTables {
			cursor, ok := pullResp.Cursors[table]
			if !ok || cursor == nil {
				if err := h.storages.Cursors.Clear(ctx, q, table); err != nil {
					return err
				}
				continue
			}
			if err := h.storages.Cursors.Set(ctx, q, table, *cursor); err != nil {
				return err
			}
		}
		return nil
	})
}

// applyRows normalizes, filters and upserts one table's remote rows.
func (h *httpRemoteDriver) applyRows(ctx context.Context, q store.Querier, table string, remote []models.Row, now time.Time) error {
	if len(remote) == 0 {
		return nil
	}

	rows := make([]models.Row, 0, len(remote))
	for _, raw := range remote {
		row, ok := normalizeRemoteRow(raw, now)
		if !ok {
			h.logger.Warn().
				Str("func", "httpRemoteDriver.applyRows").
				Str("table", table).
				Msg("dropping structurally invalid remote row")
			continue
		}
		rows = append(rows, row)
	}

	return h.storages.Registry.UpsertRecords(ctx, q, table, rows)
}

func (h *httpRemoteDriver) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.session.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrSignedOut
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemote, resp.StatusCode(), body)
}

func remoteMessage(msg string) string {
	if msg == "" {
		return "request rejected"
	}
	return msg
}
