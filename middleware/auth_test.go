package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
}

func newAuthTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthTestRouter()

	token, _, err := services.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
	}{
		{"Missing Header", "", http.StatusUnauthorized},
		{"No Scheme", token, http.StatusUnauthorized},
		{"Wrong Scheme", "Basic " + token, http.StatusUnauthorized},
		{"Garbage Token", "Token garbage", http.StatusUnauthorized},
		{"Empty Token Value", "Token ", http.StatusUnauthorized},
		{"Token Scheme", "Token " + token, http.StatusOK},
		{"Bearer Scheme", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedCode {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedCode, w.Body.String())
			}
		})
	}
}
