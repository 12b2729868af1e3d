package service

import "errors"

var (
	ErrInvalidCardHash    = errors.New("card hash must be 64 hex characters")
	ErrInvalidToken       = errors.New("registration token not found or already used")
	ErrAlreadyRegistered  = errors.New("card is already registered")
	ErrTokenCollision     = errors.New("another outstanding registration shares this token")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username must be 1-32 printable characters")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this id, card or username already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryEmpty      = errors.New("category has no questions")
	ErrQuestionNotFound   = errors.New("question not found or already answered")
	ErrRegistrationFailed = errors.New("registration could not be completed")
)
