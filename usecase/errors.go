package usecase

import "errors"

// Validation failures (client error, 400)
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = errors.New("title exceeds maximum length")
	ErrContentTooLong = errors.New("content exceeds maximum length")
	ErrQueryRequired  = errors.New("search query is required")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrWeakPassword   = errors.New("password does not meet requirements")
)

// Not-found failures (client error, 404). A note owned by someone else is
// reported exactly like a note that does not exist.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrUserNotFound = errors.New("user not found")
)

// Authentication failures (client error)
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTwoFactorRequired    = errors.New("two-factor code required")
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")
	ErrTwoFactorNotPending  = errors.New("two-factor setup not started")
)
