package users_middleware

import (
	"net/http"
	"strings"

	users_models "importhub/internal/features/users/models"
	users_services "importhub/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "importhub.user"

// AuthMiddleware resolves the bearer token to an active human account and
// stores it in the gin context. Bot accounts act only through background
// work and are refused here.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if user.IsBot {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Bot accounts cannot call the API"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)

	return user, ok
}
