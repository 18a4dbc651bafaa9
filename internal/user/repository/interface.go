package repository

import (
	"context"

	"github-relay/internal/user"
)

// Repository defines all data access methods for the User entity.
type Repository interface {
	CreateUser(ctx context.Context, opt CreateUserOptions) (user.User, error)
	GetOneUser(ctx context.Context, opt GetOneUserOptions) (user.User, error)
	UpdateUser(ctx context.Context, opt UpdateUserOptions) (user.User, error)
}
