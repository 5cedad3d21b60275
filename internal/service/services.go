package service

import (
	"github.com/dkhalin/habitkeeper/internal/adapter"
	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/store"
)

// ClientServices groups the client-side service layer: the session, the
// local mutation layer and the sync subsystem.
type ClientServices struct {
	Session   *Session
	Mutations *Mutations
	Sync      *SyncController
}

// NewClientServices wires the service layer on top of the storage layer
// and the remote driver.
func NewClientServices(storages *store.ClientStorages, driver adapter.RemoteDriver, session *Session, opts SyncOptions, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Session:   session,
		Mutations: NewMutations(storages, log),
		Sync:      NewSyncController(storages, driver, opts, log),
	}
}
