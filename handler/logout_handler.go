package handler

import (
	"log"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler invalidates the presented token for its remaining
// lifetime and ends the session it belongs to.
func LogoutHandler(c *gin.Context, sessionRepo SessionStore) {
	tokenString := c.GetString("token")

	if err := services.BlacklistToken(tokenString); err != nil {
		utils.TrackError("auth", "token_blacklist")
		log.Printf("Failed to blacklist token: %v", err)
	}

	if sessionID := c.GetString("session_id"); sessionID != "" {
		if err := sessionRepo.EndSession(c, sessionID); err != nil {
			utils.TrackError("session", "logout")
			log.Printf("Failed to end session %s: %v", sessionID, err)
		}
	}

	utils.Message(c, "Successfully logged out.")
}
