package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/dbx"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (a *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (login, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Login, user.PasswordHash, nullableRole(user.Role)).Scan(&user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	query :=
		`SELECT login, password_hash, role, created_at FROM users
		 WHERE login = $1
		 `

	user := &models.User{}
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, query, login).Scan(&user.Login, &user.PasswordHash, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Role, err = models.ParseRole(role.String)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", login, err)
	}

	user.Apps, err = r.grants(ctx, login)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) grants(ctx context.Context, login string) ([]string, error) {
	query :=
		`SELECT app_name FROM user_apps
		 WHERE login = $1
		 ORDER BY app_name
		 `

	rows, err := r.db.QueryContext(ctx, query, login)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	apps := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		apps = append(apps, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return apps, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, login string, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $2
		 WHERE login = $1
		 `

	res, err := r.db.ExecContext(ctx, query, login, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) AddGrants(ctx context.Context, login string, apps []string) error {
	query :=
		`INSERT INTO user_apps (login, app_name)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	for _, app := range apps {
		if _, err := r.db.ExecContext(ctx, query, login, app); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

func nullableRole(role models.Role) sql.NullString {
	if role == models.RoleUser {
		return sql.NullString{}
	}
	return sql.NullString{String: string(role), Valid: true}
}
