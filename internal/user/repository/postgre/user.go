package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github-relay/internal/user"
	repo "github-relay/internal/user/repository"
)

// CreateUser inserts a new User row and returns the created entity.
func (r *implRepository) CreateUser(ctx context.Context, opt repo.CreateUserOptions) (user.User, error) {
	const query = `
		INSERT INTO users (telegram_id, telegram_username, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, telegram_id, telegram_username, COALESCE(github_login, ''), role, created_at`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, opt.TelegramID, opt.TelegramUsername, opt.Role).Scan(
		&u.ID, &u.TelegramID, &u.TelegramUsername, &u.GithubLogin, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateUser"), err)
		return user.User{}, repo.ErrFailedToInsert
	}
	return u, nil
}

// GetOneUser retrieves a single User by the provided filters (AND condition).
// Returns zero-value User (ID == "") when not found — do NOT return error for not-found.
func (r *implRepository) GetOneUser(ctx context.Context, opt repo.GetOneUserOptions) (user.User, error) {
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if opt.ID != "" {
		args = append(args, opt.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}
	if opt.TelegramID != 0 {
		args = append(args, opt.TelegramID)
		conds = append(conds, fmt.Sprintf("telegram_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return user.User{}, repo.ErrFailedToGet
	}

	query := fmt.Sprintf(
		`SELECT id, telegram_id, telegram_username, COALESCE(github_login, ''), role, created_at
		 FROM users WHERE %s LIMIT 1`,
		strings.Join(conds, " AND "),
	)

	var u user.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.TelegramID, &u.TelegramUsername, &u.GithubLogin, &u.Role, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return user.User{}, nil // not found → zero value, no error
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneUser"), err)
		return user.User{}, repo.ErrFailedToGet
	}
	return u, nil
}

// UpdateUser updates a User by ID and returns the updated entity.
func (r *implRepository) UpdateUser(ctx context.Context, opt repo.UpdateUserOptions) (user.User, error) {
	const query = `
		UPDATE users
		SET github_login = COALESCE(NULLIF($1, ''), github_login),
		    role = COALESCE(NULLIF($2, ''), role)
		WHERE id = $3
		RETURNING id, telegram_id, telegram_username, COALESCE(github_login, ''), role, created_at`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, opt.GithubLogin, opt.Role, opt.ID).Scan(
		&u.ID, &u.TelegramID, &u.TelegramUsername, &u.GithubLogin, &u.Role, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return user.User{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateUser"), err)
		return user.User{}, repo.ErrFailedToUpdate
	}
	return u, nil
}
