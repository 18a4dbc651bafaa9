package usecase

import (
	"context"
	"crypto/subtle"
	"regexp"

	"github-relay/internal/user"
	"github-relay/internal/user/repository"
)

// GitHub logins are 1-39 characters of alphanumerics and hyphens.
var githubLoginRe = regexp.MustCompile(`^[a-zA-Z0-9-]{1,39}$`)

// Register creates an account for the Telegram user, or returns the existing
// one. Registration is idempotent.
func (uc *implUseCase) Register(ctx context.Context, input user.RegisterInput) (user.RegisterOutput, error) {
	existing, err := uc.repo.GetOneUser(ctx, repository.GetOneUserOptions{TelegramID: input.TelegramID})
	if err != nil {
		return user.RegisterOutput{}, err
	}
	if existing.ID != "" {
		return user.RegisterOutput{User: existing}, nil
	}

	created, err := uc.repo.CreateUser(ctx, repository.CreateUserOptions{
		TelegramID:       input.TelegramID,
		TelegramUsername: input.TelegramUsername,
		Role:             user.RoleMember,
	})
	if err != nil {
		return user.RegisterOutput{}, err
	}

	uc.l.Infof(ctx, "Registered user %s (telegram %d)", created.ID, created.TelegramID)
	return user.RegisterOutput{User: created, Created: true}, nil
}

// BindGithub attaches a GitHub login to a registered account.
func (uc *implUseCase) BindGithub(ctx context.Context, input user.BindGithubInput) (user.User, error) {
	if !githubLoginRe.MatchString(input.GithubLogin) {
		return user.User{}, user.ErrInvalidGithubLogin
	}

	existing, err := uc.repo.GetOneUser(ctx, repository.GetOneUserOptions{TelegramID: input.TelegramID})
	if err != nil {
		return user.User{}, err
	}
	if existing.ID == "" {
		return user.User{}, user.ErrNotRegistered
	}

	updated, err := uc.repo.UpdateUser(ctx, repository.UpdateUserOptions{
		ID:          existing.ID,
		GithubLogin: input.GithubLogin,
	})
	if err != nil {
		return user.User{}, err
	}

	uc.l.Infof(ctx, "User %s bound to github login %s", updated.ID, updated.GithubLogin)
	return updated, nil
}

// Login promotes a registered account to admin when the password matches.
func (uc *implUseCase) Login(ctx context.Context, input user.LoginInput) (user.User, error) {
	if uc.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(input.Password), []byte(uc.adminPassword)) != 1 {
		uc.l.Warnf(ctx, "Failed admin login attempt from telegram %d", input.TelegramID)
		return user.User{}, user.ErrWrongPassword
	}

	existing, err := uc.repo.GetOneUser(ctx, repository.GetOneUserOptions{TelegramID: input.TelegramID})
	if err != nil {
		return user.User{}, err
	}
	if existing.ID == "" {
		return user.User{}, user.ErrNotRegistered
	}
	if existing.Role == user.RoleAdmin {
		return existing, nil
	}

	updated, err := uc.repo.UpdateUser(ctx, repository.UpdateUserOptions{
		ID:   existing.ID,
		Role: user.RoleAdmin,
	})
	if err != nil {
		return user.User{}, err
	}

	uc.l.Infof(ctx, "User %s promoted to admin", updated.ID)
	return updated, nil
}
