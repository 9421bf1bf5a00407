package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/pquerna/otp/totp"
)

// UsersStore is the persistence contract the user service needs.
type UsersStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	SaveToken(ctx context.Context, userID, token string) error
	SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error
}

type UserService struct {
	Store UsersStore
}

// Register creates a new user. Username and email must be unique.
func (svc *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if existing, err := svc.Store.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	if existing, err := svc.Store.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	if !utils.ValidatePassword(password) {
		return nil, ErrWeakPassword
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.NewID(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := svc.Store.AddUser(ctx, user); err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	return user, nil
}

// Authenticate verifies the credentials and, when two-factor is enabled
// for the account, the TOTP code. Bad username and bad password are
// indistinguishable to the caller.
func (svc *UserService) Authenticate(ctx context.Context, username, password, twoFactorCode string) (*model.User, error) {
	user, err := svc.Store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if twoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa")
			return nil, ErrTwoFactorRequired
		}
		if !totp.Validate(twoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "2fa")
			return nil, ErrInvalidTwoFactorCode
		}
	}

	utils.TrackAuthAttempt("success", "login")
	return user, nil
}

// IssueToken returns the user's current token while it remains valid and
// not blacklisted; otherwise it issues a fresh one and persists it. A user
// logging in twice therefore holds a single token, not two.
func (svc *UserService) IssueToken(ctx context.Context, user *model.User) (token string, sessionID string, err error) {
	if user.Token != "" && !services.IsTokenBlacklisted(user.Token) {
		if claims, parseErr := services.ParseToken(user.Token); parseErr == nil {
			return user.Token, claims.SessionID, nil
		}
	}

	token, sessionID, err = services.GenerateToken(user.UserID)
	if err != nil {
		return "", "", err
	}

	if err := svc.Store.SaveToken(ctx, user.UserID, token); err != nil {
		return "", "", err
	}

	return token, sessionID, nil
}

// BeginTwoFactorSetup generates a TOTP secret for the user. Two-factor
// stays off until VerifyTwoFactorSetup confirms a code.
func (svc *UserService) BeginTwoFactorSetup(ctx context.Context, user *model.User) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      services.TokenIssuer,
		AccountName: user.Username,
	})
	if err != nil {
		return "", "", err
	}

	if err := svc.Store.SetTwoFactor(ctx, user.UserID, key.Secret(), false); err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// VerifyTwoFactorSetup confirms the pending secret with a live code and
// enables two-factor for the account.
func (svc *UserService) VerifyTwoFactorSetup(ctx context.Context, user *model.User, code string) error {
	if user.TwoFactorSecret == "" {
		return ErrTwoFactorNotPending
	}
	if !totp.Validate(code, user.TwoFactorSecret) {
		return ErrInvalidTwoFactorCode
	}

	return svc.Store.SetTwoFactor(ctx, user.UserID, user.TwoFactorSecret, true)
}

func (svc *UserService) DisableTwoFactor(ctx context.Context, user *model.User) error {
	return svc.Store.SetTwoFactor(ctx, user.UserID, "", false)
}
