package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/utils"
)

// OptionalAuthMiddleware attaches the user to the context when a valid
// bearer token is present and continues anonymously otherwise. Used by
// guest-checkout endpoints that attribute records to a user when they can.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.Next()
			return
		}

		if denylisted, err := services.IsDenylisted(tokenString); err != nil || denylisted {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.Next()
			return
		}

		user, err := services.FindUserByID(uint(userIDFloat))
		if err == nil {
			c.Set("user", user)
		}
		c.Next()
	}
}
