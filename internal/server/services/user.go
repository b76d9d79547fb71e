// Package services contains server-side business logic. This file implements
// UserService: signup, login and password rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Principal *auth.Principal
}

// UserService owns the account lifecycle. It keeps no per-user state.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.CredentialHasher
	codec       *auth.TokenCodec
	logger      logging.Logger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.CredentialHasher,
	codec *auth.TokenCodec, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		logger:      logger,
		now:         time.Now,
	}
}

// Signup registers login with the plain user role and the given app grants.
// Apps that do not exist yet are created. An existing login yields
// common.ErrorAlreadyExists and leaves the store untouched.
func (s *UserService) Signup(ctx context.Context, login, password string, apps []string) (*models.User, error) {
	_, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, login)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup: lookup failed", "login", login, "error", err)
		return nil, common.ErrorInternal
	}

	apps = models.NormalizeGrants(apps)
	for _, a := range apps {
		if !models.ValidAppName(a) {
			return nil, common.ErrorInvalidGrantName
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "signup: hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{Login: login, PasswordHash: hash, Role: models.RoleUser}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		appsRepo := s.repomanager.Apps(tx)
		for _, a := range apps {
			if err := appsRepo.Ensure(ctx, a); err != nil {
				return err
			}
		}
		if err := s.repomanager.Users(tx).AddGrants(ctx, login, apps); err != nil {
			return err
		}
		created.Apps = apps
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "signup: store failed", "login", login, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "login", login, "apps", len(apps))
	return user.WithoutPassword(), nil
}

// Login checks the credentials and issues a token carrying the user's role
// and grants. An unknown login and a wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, login, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return nil, common.ErrorBadCredentials
		}
		s.logger.Error(ctx, "login: lookup failed", "login", login, "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorBadCredentials
	}

	now := s.now()
	token, err := s.codec.Issue(user.Login, user.Role, user.Apps, now)
	if err != nil {
		s.logger.Error(ctx, "login: issuing token failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &Session{
		Token:     token,
		ExpiresAt: now.Add(s.codec.Duration()).Truncate(time.Second),
		Principal: &auth.Principal{
			Login:         user.Login,
			Role:          user.Role,
			Apps:          append([]string{}, user.Apps...),
			Authenticated: true,
		},
	}, nil
}

// UpdatePassword rotates the password of the principal's account.
func (s *UserService) UpdatePassword(ctx context.Context, principal *auth.Principal, oldPassword, newPassword string) error {
	if !principal.IsAuthenticated() {
		return common.ErrorUnauthenticated
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, principal.Login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthenticated
		}
		s.logger.Error(ctx, "update password: lookup failed", "login", principal.Login, "error", err)
		return common.ErrorInternal
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return common.ErrorBadCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error(ctx, "update password: hashing failed", "error", err)
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, user.Login, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthenticated
		}
		s.logger.Error(ctx, "update password: store failed", "login", user.Login, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password updated", "login", user.Login)
	return nil
}

// fallbackDummyHash is a well-formed bcrypt hash (cost 10) matching no
// password. It is used when the dummy cannot be hashed at runtime.
const fallbackDummyHash = "$2a$10$dXNlcmtlZXBlci5kdW1teSZm9yLnRpbWluZy5lcXVhbGl6YXRpb24"

// dummy is compared against on unknown logins so that both failure paths
// cost one hash verification.
func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("userkeeper-dummy-password")
		if err != nil {
			h = fallbackDummyHash
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
