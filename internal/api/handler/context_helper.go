package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// MustGetUserID extrait le user_id injecté par le middleware JWT.
// Si l'injection a échoué, écrit une réponse 401 et retourne ok=false ;
// l'appelant doit alors retourner immédiatement.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	return s, true
}

// MustGetRole extrait le rôle injecté par le middleware JWT.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	return s, true
}
