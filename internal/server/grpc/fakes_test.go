package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeUsers keeps accounts in a map and issues real tokens, so that the
// gate sees genuine credentials in end-to-end tests.
type fakeUsers struct {
	codec     *auth.TokenCodec
	passwords map[string]string
	roles     map[string]models.Role
	apps      map[string][]string

	signupErr error
	loginErr  error

	lastPrincipal *auth.Principal
}

func newFakeUsers(codec *auth.TokenCodec) *fakeUsers {
	return &fakeUsers{
		codec:     codec,
		passwords: map[string]string{"root": "toor12"},
		roles:     map[string]models.Role{"root": models.RoleAdmin},
		apps:      map[string][]string{"root": {}},
	}
}

func (f *fakeUsers) Signup(_ context.Context, login, password string, apps []string) (*models.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	if _, ok := f.passwords[login]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.passwords[login] = password
	f.roles[login] = models.RoleUser
	f.apps[login] = apps
	return &models.User{Login: login, Apps: apps}, nil
}

func (f *fakeUsers) Login(_ context.Context, login, password string) (*services.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if pw, ok := f.passwords[login]; !ok || pw != password {
		return nil, common.ErrorBadCredentials
	}
	now := time.Now()
	tok, err := f.codec.Issue(login, f.roles[login], f.apps[login], now)
	if err != nil {
		return nil, err
	}
	return &services.Session{
		Token:     tok,
		ExpiresAt: now.Add(f.codec.Duration()).Truncate(time.Second),
		Principal: &auth.Principal{Login: login, Role: f.roles[login], Apps: f.apps[login], Authenticated: true},
	}, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, p *auth.Principal, oldPassword, newPassword string) error {
	f.lastPrincipal = p
	if !p.IsAuthenticated() {
		return common.ErrorUnauthenticated
	}
	if f.passwords[p.Login] != oldPassword {
		return common.ErrorBadCredentials
	}
	f.passwords[p.Login] = newPassword
	return nil
}

type fakeApps struct {
	apps      map[string]*models.App
	createErr error
	deleteErr error
}

func newFakeApps() *fakeApps {
	return &fakeApps{apps: map[string]*models.App{}}
}

func (f *fakeApps) Create(_ context.Context, name string) (*models.App, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.apps[name]; ok {
		return nil, common.ErrorAlreadyExists
	}
	a := &models.App{ID: int64(len(f.apps) + 1), Name: name}
	f.apps[name] = a
	return a, nil
}

func (f *fakeApps) Delete(_ context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.apps, name)
	return nil
}
