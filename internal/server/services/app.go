package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
)

// AppService manages the catalogue of grantable apps. Access control is the
// caller's job; the gRPC layer restricts it to administrators.
type AppService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAppService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AppService {
	return &AppService{db: db, repomanager: m, logger: logger}
}

func (s *AppService) Create(ctx context.Context, name string) (*models.App, error) {
	if !models.ValidAppName(name) {
		return nil, common.ErrorInvalidGrantName
	}

	repo := s.repomanager.Apps(s.db)

	_, err := repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "create app: lookup failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	// The unique constraint still catches a concurrent insert.
	app, err := repo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create app failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "app created", "name", name)
	return app, nil
}

// Delete removes the app and every grant of it. Unknown names are ignored.
func (s *AppService) Delete(ctx context.Context, name string) error {
	if err := s.repomanager.Apps(s.db).Delete(ctx, name); err != nil {
		s.logger.Error(ctx, "delete app failed", "name", name, "error", err)
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "app deleted", "name", name)
	return nil
}
