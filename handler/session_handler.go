package handler

import (
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetActiveSessionsHandler lists the caller's active sessions.
func GetActiveSessionsHandler(c *gin.Context, sessionRepo SessionStore) {
	userID := c.GetString("user_id")

	sessions, err := sessionRepo.GetActiveSessions(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	utils.Success(c, sessions)
}
