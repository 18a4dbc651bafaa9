package usecase

import (
	"github-relay/internal/user/repository"
	"github-relay/pkg/log"
)

// implUseCase is the private implementation of user.UseCase.
type implUseCase struct {
	repo          repository.Repository
	adminPassword string
	l             log.Logger
}

// New creates a new user UseCase implementation. adminPassword guards the
// /login promotion; an empty password disables it.
func New(repo repository.Repository, adminPassword string, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:          repo,
		adminPassword: adminPassword,
		l:             l,
	}
}
