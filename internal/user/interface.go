package user

import "context"

type UseCase interface {
	// Register creates an account for the Telegram user, or returns the
	// existing one.
	Register(ctx context.Context, input RegisterInput) (RegisterOutput, error)

	// BindGithub attaches a GitHub login to a registered account.
	BindGithub(ctx context.Context, input BindGithubInput) (User, error)

	// Login promotes a registered account to admin when the password matches.
	Login(ctx context.Context, input LoginInput) (User, error)
}
