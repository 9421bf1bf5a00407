package handler

import (
	"errors"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		utils.BadRequest(c, "Username, email and password are required")
		return
	}

	user, err := userService.Register(c, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			utils.BadRequest(c, "Username already exists")
		case errors.Is(err, usecase.ErrEmailTaken):
			utils.BadRequest(c, "Email already exists")
		case errors.Is(err, usecase.ErrWeakPassword):
			utils.BadRequest(c, "Password must be at least 6 characters and contain a number and a special character")
		default:
			utils.InternalError(c, "Failed to register user")
		}
		return
	}

	utils.Created(c, gin.H{
		"detail":  "User created successfully",
		"user_id": user.UserID,
	})
}
