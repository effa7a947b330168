package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/pkg/jwt"
	"github.com/TisTos-tass3/StagINS/pkg/redis"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// JWTAuth extrait et vérifie l'access token de l'en-tête
// Authorization: Bearer <token>. cache peut être nil, la liste noire est
// alors ignorée.
func JWTAuth(jwtMgr *jwt.Manager, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "en-tête d'authentification manquant")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "en-tête d'authentification mal formé")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalide ou expiré")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "type de token invalide")
			c.Abort()
			return
		}

		if cache != nil {
			revoque, err := cache.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoque {
				response.Unauthorized(c, 10002, "token révoqué")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth n'admet que les rôles listés
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "non authentifié")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "accès refusé pour ce rôle")
		c.Abort()
	}
}
