package services

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is; anything
// else is a technical error and falls through to the global error handler.
var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not authorized")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrCartEmpty          = errors.New("cart is empty")
)
