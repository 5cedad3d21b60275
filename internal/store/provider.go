package store

// Provider hands out the local database handle. Mutation and sync entry
// points call Acquire exactly once, before any validation or I/O, so
// platforms without a local database fail fast and side-effect free.
type Provider interface {
	Acquire() (*DB, error)
}

type dbProvider struct {
	db *DB
}

// NewProvider wraps an open database in a Provider.
func NewProvider(db *DB) Provider {
	return &dbProvider{db: db}
}

func (p *dbProvider) Acquire() (*DB, error) {
	return p.db, nil
}

type unsupportedProvider struct{}

// UnsupportedProvider is the Provider wired on platforms without local
// database support; Acquire always returns ErrPlatformUnsupported.
func UnsupportedProvider() Provider {
	return unsupportedProvider{}
}

func (unsupportedProvider) Acquire() (*DB, error) {
	return nil, ErrPlatformUnsupported
}
