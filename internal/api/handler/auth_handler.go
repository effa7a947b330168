package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/service"
	"github.com/TisTos-tass3/StagINS/pkg/response"
)

// AuthHandler handlers HTTP du module d'authentification
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler crée un AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login connexion d'un utilisateur
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11001, "identifiant ou mot de passe incorrect")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Refresh renouvellement du couple de tokens
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		response.Unauthorized(c, 11002, "session expirée, veuillez vous reconnecter")
		return
	}

	response.OK(c, result)
}

// Logout révocation des tokens courants
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	var req dto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req) // refresh token facultatif

	if err := h.authSvc.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me profil de l'utilisateur connecté
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11003, "utilisateur introuvable")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ChangePassword changement du mot de passe de l'utilisateur connecté
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, 11004, "mot de passe actuel incorrect")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// CreateUser création d'un compte par un administrateur
// POST /api/v1/auth/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	user, err := h.authSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(c, 11005, "ce nom d'utilisateur est déjà pris")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}
