package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	appsrepo "github.com/dmitrijs2005/userkeeper/internal/server/repositories/apps"
	usersrepo "github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memStore is an in-memory identity store. Failures can be injected per
// operation.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	apps   map[string]*models.App
	nextID int64

	getErr    error
	createErr error
	updateErr error
	grantErr  error
	ensureErr error
	deleteErr error
	appGetErr error
	writes    int

	// raced is inserted right before the next user Create, as if another
	// writer got there first.
	raced *models.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, apps: map[string]*models.App{}}
}

func (s *memStore) user(login string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[login]
	if !ok {
		return nil
	}
	c := *u
	c.Apps = append([]string{}, u.Apps...)
	return &c
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	if r.s.raced != nil {
		r.s.users[r.s.raced.Login] = r.s.raced
		r.s.raced = nil
	}
	if _, ok := r.s.users[u.Login]; ok {
		return nil, common.ErrorAlreadyExists
	}
	c := *u
	c.Apps = []string{}
	c.CreatedAt = time.Now()
	r.s.users[u.Login] = &c
	r.s.writes++
	out := c
	return &out, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getErr != nil {
		return nil, r.s.getErr
	}
	u, ok := r.s.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	c.Apps = append([]string{}, u.Apps...)
	return &c, nil
}

func (r memUsers) UpdatePassword(_ context.Context, login, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateErr != nil {
		return r.s.updateErr
	}
	u, ok := r.s.users[login]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	r.s.writes++
	return nil
}

func (r memUsers) AddGrants(_ context.Context, login string, apps []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.grantErr != nil {
		return r.s.grantErr
	}
	u := r.s.users[login]
	u.Apps = models.NormalizeGrants(append(u.Apps, apps...))
	r.s.writes++
	return nil
}

type memApps struct{ s *memStore }

func (r memApps) Create(_ context.Context, name string) (*models.App, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	if _, ok := r.s.apps[name]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.s.nextID++
	a := &models.App{ID: r.s.nextID, Name: name, CreatedAt: time.Now()}
	r.s.apps[name] = a
	r.s.writes++
	c := *a
	return &c, nil
}

func (r memApps) GetByName(_ context.Context, name string) (*models.App, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.appGetErr != nil {
		return nil, r.s.appGetErr
	}
	a, ok := r.s.apps[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *a
	return &c, nil
}

func (r memApps) Ensure(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ensureErr != nil {
		return r.s.ensureErr
	}
	if _, ok := r.s.apps[name]; !ok {
		r.s.nextID++
		r.s.apps[name] = &models.App{ID: r.s.nextID, Name: name, CreatedAt: time.Now()}
		r.s.writes++
	}
	return nil
}

func (r memApps) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.deleteErr != nil {
		return r.s.deleteErr
	}
	delete(r.s.apps, name)
	for _, u := range r.s.users {
		kept := u.Apps[:0]
		for _, a := range u.Apps {
			if a != name {
				kept = append(kept, a)
			}
		}
		u.Apps = kept
	}
	r.s.writes++
	return nil
}

// fakeRepoManager hands out the same in-memory store for every DBTX.
type fakeRepoManager struct{ s *memStore }

func (m fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository       { return memUsers{m.s} }
func (m fakeRepoManager) Apps(dbx.DBTX) appsrepo.Repository         { return memApps{m.s} }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newHasher(t *testing.T) *auth.BcryptHasher {
	t.Helper()
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

type fixture struct {
	store *memStore
	mock  sqlmock.Sqlmock
	codec *auth.TokenCodec
	users *UserService
	apps  *AppService
	boot  *Bootstrap
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	rm := fakeRepoManager{store}
	hasher := newHasher(t)
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	log := logging.Nop()

	return &fixture{
		store: store,
		mock:  mock,
		codec: codec,
		users: NewUserService(db, rm, hasher, codec, log),
		apps:  NewAppService(db, rm, log),
		boot:  NewBootstrap(db, rm, hasher, log),
	}
}
