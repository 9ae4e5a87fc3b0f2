package middlewares

import (
	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/KacperKuznik/image-hosting-api/repository"
	"github.com/KacperKuznik/image-hosting-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware leaves the authenticated *entity.User in the gin context
// under "principal".
func AuthMiddleware(userRepo *repository.UserRepository, config *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			utils.JSON401(c, "Authorization token is required")
			c.Abort()
			return
		}

		parsedToken, err := utils.ParseToken(tokenStr, config)
		if err != nil || !parsedToken.Valid {
			utils.JSON401(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := parsedToken.Claims.(jwt.MapClaims)
		if !ok {
			utils.JSON401(c, "Invalid token claims")
			c.Abort()
			return
		}

		userID, err := utils.UserIDFromClaims(claims)
		if err != nil {
			utils.JSON401(c, "Invalid token claims")
			c.Abort()
			return
		}

		// The user row carries the preloaded tier, so downstream policy
		// resolution rarely needs another round trip.
		user, err := userRepo.FindByID(userID)
		if err != nil {
			utils.JSON401(c, "Unknown user")
			c.Abort()
			return
		}

		c.Set("principal", user)
		c.Next()
	}
}
