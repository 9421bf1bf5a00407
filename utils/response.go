package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail is the body shape used for every message-only response,
// e.g. {"detail": "Note shared successfully"}.
type Detail struct {
	Detail string `json:"detail"`
}

// Success responses

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Detail{Detail: message})
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Detail{Detail: message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Detail{Detail: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Detail{Detail: message})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Detail{Detail: message})
}
