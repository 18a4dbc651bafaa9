package user

import "time"

// Roles a user can hold.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is a Telegram account known to the bot, optionally bound to a GitHub
// login.
type User struct {
	ID               string
	TelegramID       int64
	TelegramUsername string
	GithubLogin      string
	Role             string
	CreatedAt        time.Time
}

// --- UseCase Inputs ---

type RegisterInput struct {
	TelegramID       int64
	TelegramUsername string
}

type BindGithubInput struct {
	TelegramID  int64
	GithubLogin string
}

type LoginInput struct {
	TelegramID int64
	Password   string
}

// --- UseCase Outputs ---

type RegisterOutput struct {
	User    User
	Created bool // false when the account was already registered
}
