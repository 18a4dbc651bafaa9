package postgre

import (
	"database/sql"
	"fmt"

	"github-relay/internal/user/repository"
	"github-relay/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed Repository for the user domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("user/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("user/repository/postgre.%s", method)
}
