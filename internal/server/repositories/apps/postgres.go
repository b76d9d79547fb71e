package apps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.App, error) {
	query := `
		INSERT INTO apps (name)
		VALUES ($1)
		RETURNING id, created_at
	`
	app := &models.App{Name: name}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&app.ID, &app.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.App, error) {
	query := `
		SELECT id, name, created_at
		FROM apps
		WHERE name = $1
	`
	app := &models.App{}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&app.ID, &app.Name, &app.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) Ensure(ctx context.Context, name string) error {
	query := `
		INSERT INTO apps (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	query := `
		DELETE FROM apps
		WHERE name = $1
	`
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
