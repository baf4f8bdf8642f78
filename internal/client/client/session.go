package client

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/examprep-admin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/examprep-admin/internal/dbx"
)

// SessionStore persists the "a login succeeded before" marker. Its absence
// means a 401 is never eligible for a refresh.
type SessionStore interface {
	HasSession(ctx context.Context) (bool, error)
	// SetSession records the marker together with the principal's email.
	SetSession(ctx context.Context, email string) error
	ClearSession(ctx context.Context) error
	// Email is the principal recorded with the marker, "" when there is none.
	Email(ctx context.Context) (string, error)
}

const (
	keyHasSession = "has_session"
	keyAdminEmail = "admin_email"
)

// MetadataSessionStore keeps the marker in the local metadata table so it
// survives restarts.
type MetadataSessionStore struct {
	db *sql.DB
}

var _ SessionStore = (*MetadataSessionStore)(nil)

func NewMetadataSessionStore(db *sql.DB) *MetadataSessionStore {
	return &MetadataSessionStore{db: db}
}

func (s *MetadataSessionStore) HasSession(ctx context.Context) (bool, error) {
	return metadata.NewSQLiteRepository(s.db).Has(ctx, keyHasSession)
}

func (s *MetadataSessionStore) SetSession(ctx context.Context, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyHasSession, []byte("1")); err != nil {
			return err
		}
		return repo.Set(ctx, keyAdminEmail, []byte(email))
	})
}

func (s *MetadataSessionStore) ClearSession(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, keyHasSession, keyAdminEmail)
}

func (s *MetadataSessionStore) Email(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyAdminEmail)
	return string(v), err
}

// MemorySessionStore is a process-local SessionStore.
type MemorySessionStore struct {
	mu    sync.Mutex
	set   bool
	email string
}

var _ SessionStore = (*MemorySessionStore)(nil)

func (m *MemorySessionStore) HasSession(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set, nil
}

func (m *MemorySessionStore) SetSession(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set, m.email = true, email
	return nil
}

func (m *MemorySessionStore) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set, m.email = false, ""
	return nil
}

func (m *MemorySessionStore) Email(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, nil
}
