package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SessionStore records the devices a user is logged in from.
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	TouchSession(ctx context.Context, sessionID string) error
	EndSession(ctx context.Context, sessionID string) error
	GetActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
}

func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo SessionStore) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Username and password are required")
		return
	}

	user, err := userService.Authenticate(c, req.Username, req.Password, req.TwoFactorCode)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.BadRequest(c, "Invalid credentials")
		case errors.Is(err, usecase.ErrTwoFactorRequired):
			utils.BadRequest(c, "Two-factor code required")
		case errors.Is(err, usecase.ErrInvalidTwoFactorCode):
			utils.BadRequest(c, "Invalid two-factor code")
		default:
			utils.InternalError(c, "Failed to log in")
		}
		return
	}

	token, sessionID, err := userService.IssueToken(c, user)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	// A reused token maps to an existing session; only a fresh token
	// opens a new one.
	if err := ensureSession(c, user.UserID, sessionID, sessionRepo); err != nil {
		utils.TrackError("session", "creation")
		log.Printf("Failed to record session for user %s: %v", user.UserID, err)
	}

	utils.Success(c, gin.H{
		"detail": "User logged in successfully",
		"token":  token,
		"user": gin.H{
			"id":       user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func ensureSession(c *gin.Context, userID, sessionID string, sessionRepo SessionStore) error {
	existing, err := sessionRepo.GetSession(c, sessionID)
	if err != nil {
		return err
	}
	if existing != nil {
		return sessionRepo.TouchSession(c, sessionID)
	}

	userAgent := c.Request.UserAgent()
	now := time.Now()

	session := &model.Session{
		SessionID:      sessionID,
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     utils.FormatDeviceInfo(userAgent),
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Duration(utils.JWTExpirationTime) * time.Second),
		LastActivityAt: now,
		IsActive:       true,
	}

	return sessionRepo.CreateSession(c, session)
}
