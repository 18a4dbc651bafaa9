package repository

// CreateUserOptions holds parameters for inserting a new User.
type CreateUserOptions struct {
	TelegramID       int64
	TelegramUsername string
	Role             string
}

// GetOneUserOptions holds filter parameters for fetching a single User.
// All non-zero fields are applied as AND conditions.
type GetOneUserOptions struct {
	ID         string
	TelegramID int64
}

// UpdateUserOptions holds parameters for updating an existing User. Empty
// fields keep their stored value.
type UpdateUserOptions struct {
	ID          string
	GithubLogin string
	Role        string
}
