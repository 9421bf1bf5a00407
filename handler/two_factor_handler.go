package handler

import (
	"errors"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func EnableTwoFactorHandler(c *gin.Context, userService *usecase.UserService) {
	user, ok := currentUser(c, userService)
	if !ok {
		return
	}

	secret, url, err := userService.BeginTwoFactorSetup(c, user)
	if err != nil {
		utils.InternalError(c, "Failed to start two-factor setup")
		return
	}

	utils.Success(c, gin.H{
		"secret": secret,
		"url":    url,
	})
}

func VerifyTwoFactorHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Code is required")
		return
	}

	user, ok := currentUser(c, userService)
	if !ok {
		return
	}

	if err := userService.VerifyTwoFactorSetup(c, user, req.Code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTwoFactorNotPending):
			utils.BadRequest(c, "Two-factor setup not started")
		case errors.Is(err, usecase.ErrInvalidTwoFactorCode):
			utils.BadRequest(c, "Invalid two-factor code")
		default:
			utils.InternalError(c, "Failed to enable two-factor")
		}
		return
	}

	utils.Message(c, "Two-factor authentication enabled")
}

func DisableTwoFactorHandler(c *gin.Context, userService *usecase.UserService) {
	user, ok := currentUser(c, userService)
	if !ok {
		return
	}

	if err := userService.DisableTwoFactor(c, user); err != nil {
		utils.InternalError(c, "Failed to disable two-factor")
		return
	}

	utils.Message(c, "Two-factor authentication disabled")
}

func currentUser(c *gin.Context, userService *usecase.UserService) (*model.User, bool) {
	user, err := userService.Store.FindByID(c, c.GetString("user_id"))
	if err != nil {
		utils.InternalError(c, "Failed to load user")
		return nil, false
	}
	if user == nil {
		utils.Unauthorized(c, "Unknown user")
		return nil, false
	}
	return user, true
}
