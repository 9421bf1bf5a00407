package services

import (
	"errors"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenIssuer = "notedeck"

// TokenClaims is what auth middleware and handlers get back from ParseToken.
type TokenClaims struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// GenerateToken issues a signed access token for the user. The jti claim
// doubles as the session identifier for the login that produced the token.
func GenerateToken(userID string) (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     sessionID,
		"iss":     TokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     expirationTime.Unix(),
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		return "", "", err
	}

	return signedToken, sessionID, nil
}

// ParseToken validates the token signature, expiry and issuer and returns
// its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if iss, ok := claims["iss"].(string); !ok || iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("invalid user ID in token")
	}

	parsed := &TokenClaims{UserID: userID}

	if jti, ok := claims["jti"].(string); ok {
		parsed.SessionID = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return parsed, nil
}
