package utils

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func ParseToken(tokenString string, config *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(config.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// UserIDFromClaims reads the numeric user_id claim. JSON numbers decode as
// float64 but string-typed ids from older tokens are still accepted.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		if v < 1 {
			return 0, errors.New("invalid user_id value")
		}
		return uint(v), nil
	case json.Number:
		id, err := v.Int64()
		if err != nil || id < 1 {
			return 0, errors.New("invalid user_id value")
		}
		return uint(id), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id < 1 {
			return 0, errors.New("invalid user_id value")
		}
		return uint(id), nil
	default:
		return 0, errors.New("invalid user_id format")
	}
}
