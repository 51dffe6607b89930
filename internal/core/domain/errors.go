package domain

import "errors"

var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrSessionNotFound = errors.New("session not found")
)
