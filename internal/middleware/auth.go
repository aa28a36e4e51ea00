package middleware

import (
	"net/http"
	"strings"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/internal/util"
	"skill_quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 将 bearer token 解析为调用者身份
type Authenticator interface {
	Authenticate(token string) (*model.Identity, error)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			util.Error(c, http.StatusUnauthorized, "Missing token")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		identity, err := auth.Authenticate(tokenString)
		if err != nil {
			logger.Log.Debug("Rejected bearer token", zap.String("path", c.FullPath()), zap.Error(err))
			util.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, identity)
		c.Next()
	}
}

// RoleMiddleware 满足任一角色即放行，管理员满足任何角色要求
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)

		err := error(util.ErrPermissionDenied)
		for _, role := range roles {
			if err = service.Authorize(user, role); err == nil {
				break
			}
		}

		if err != nil {
			util.HandleError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
