package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// Bootstrap provisions the administrator account at startup.
type Bootstrap struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.CredentialHasher
	logger      logging.Logger
}

func NewBootstrap(db *sql.DB, m repomanager.RepositoryManager, hasher auth.CredentialHasher, logger logging.Logger) *Bootstrap {
	return &Bootstrap{db: db, repomanager: m, hasher: hasher, logger: logger}
}

// EnsureAdmin creates login with the admin role unless it already exists.
// An existing admin is left as is, password included, so repeated starts are
// no-ops. An existing non-admin account with that login is never promoted;
// common.ErrorAdminLoginTaken is returned instead.
func (b *Bootstrap) EnsureAdmin(ctx context.Context, login, password string) error {
	repo := b.repomanager.Users(b.db)

	u, err := repo.GetUserByLogin(ctx, login)
	if err == nil {
		return b.checkExisting(ctx, u)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := b.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = repo.Create(ctx, &models.User{Login: login, PasswordHash: hash, Role: models.RoleAdmin})
	if err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("create admin: %w", err)
		}
		// Someone else created the login between lookup and insert.
		u, err := repo.GetUserByLogin(ctx, login)
		if err != nil {
			return fmt.Errorf("lookup admin: %w", err)
		}
		return b.checkExisting(ctx, u)
	}

	b.logger.Info(ctx, "admin provisioned", "login", login)
	return nil
}

func (b *Bootstrap) checkExisting(ctx context.Context, u *models.User) error {
	if u.Role != models.RoleAdmin {
		b.logger.Error(ctx, "admin login held by non-admin account", "login", u.Login)
		return fmt.Errorf("ensure admin %q: %w", u.Login, common.ErrorAdminLoginTaken)
	}
	b.logger.Debug(ctx, "admin already provisioned", "login", u.Login)
	return nil
}
