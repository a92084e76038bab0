package gormrepo

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCandidateNameExists = errors.New("candidate name already exists")
)
