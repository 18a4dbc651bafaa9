package user

import "errors"

var (
	ErrNotRegistered      = errors.New("user not registered")
	ErrInvalidGithubLogin = errors.New("invalid github login")
	ErrWrongPassword      = errors.New("wrong admin password")
)
