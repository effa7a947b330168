package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TisTos-tass3/StagINS/config"
	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
	"github.com/TisTos-tass3/StagINS/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *testMocks) {
	t.Helper()
	repo, mocks := newTestRepo()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "secret-de-test-suffisant"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTLDefault = 24 * time.Hour
	cfg.Auth.RefreshTokenTTLRemember = 7 * 24 * time.Hour

	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop()), mocks
}

func seedUser(t *testing.T, mocks *testMocks, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hachage du mot de passe: %v", err)
	}
	user := &model.User{
		UserID:       "usr-" + username,
		Username:     username,
		Email:        username + "@example.org",
		PasswordHash: string(hash),
		Role:         role,
	}
	mocks.users.users[user.UserID] = user
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedUser(t, mocks, "gestionnaire1", "motdepasse", model.RoleGestionnaire)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "gestionnaire1",
		Password: "motdepasse",
	})
	if err != nil {
		t.Fatalf("Login devrait réussir: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("les deux tokens doivent être délivrés")
	}
	if result.User.Role != model.RoleGestionnaire {
		t.Errorf("rôle attendu gestionnaire, obtenu %q", result.User.Role)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn attendu 900, obtenu %d", result.ExpiresIn)
	}
}

func TestAuthService_Login_MauvaisMotDePasse(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedUser(t, mocks, "gestionnaire1", "motdepasse", model.RoleGestionnaire)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "gestionnaire1",
		Password: "mauvais",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials attendu, obtenu: %v", err)
	}

	// Un utilisateur inconnu produit la même erreur, sans distinction.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "inconnu",
		Password: "motdepasse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials attendu, obtenu: %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedUser(t, mocks, "admin1", "motdepasse", model.RoleAdmin)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin1",
		Password: "motdepasse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	result, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh devrait réussir: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("un nouvel access token doit être délivré")
	}

	// Un access token n'est pas accepté comme refresh token.
	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("ErrTokenInvalid attendu, obtenu: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	user := seedUser(t, mocks, "consultant1", "ancien-mdp", model.RoleConsultant)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "mauvais",
		NewPassword: "nouveau-mdp",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials attendu, obtenu: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "ancien-mdp",
		NewPassword: "nouveau-mdp",
	}); err != nil {
		t.Fatalf("ChangePassword devrait réussir: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "consultant1",
		Password: "nouveau-mdp",
	}); err != nil {
		t.Errorf("la connexion avec le nouveau mot de passe devrait réussir: %v", err)
	}
}

func TestAuthService_CreateUser(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedUser(t, mocks, "admin1", "motdepasse", model.RoleAdmin)

	result, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "nouveau",
		Email:    "nouveau@example.org",
		Password: "motdepasse",
		Role:     model.RoleConsultant,
	})
	if err != nil {
		t.Fatalf("CreateUser devrait réussir: %v", err)
	}
	if result.Role != model.RoleConsultant {
		t.Errorf("rôle attendu consultant, obtenu %q", result.Role)
	}

	_, err = svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "nouveau",
		Email:    "autre@example.org",
		Password: "motdepasse",
		Role:     model.RoleConsultant,
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("ErrUsernameTaken attendu, obtenu: %v", err)
	}
}
