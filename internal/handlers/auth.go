package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type contextKey string

const (
	AdminContextKey contextKey = "admin"
	accessCookie               = "access_token"
)

type Claims struct {
	AdminID string      `json:"admin_id"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type AdminLookupI interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByLogin(ctx context.Context, login string) (*models.Admin, error)
}

type AuthHandler struct {
	jwtConfig    *JWTConfig
	AdminStorage AdminLookupI
}

func NewAuthHandler(jwtConfig *JWTConfig, storage AdminLookupI) *AuthHandler {
	return &AuthHandler{
		jwtConfig:    jwtConfig,
		AdminStorage: storage,
	}
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req schemas.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.AdminStorage.GetByLogin(r.Context(), req.Login)
	if err != nil || admin == nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if !admin.IsActive || !admin.CheckPassword(req.Password) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.generateToken(admin)
	if err != nil {
		http.Error(w, "Error generating tokens", http.StatusInternalServerError)
		logger.Log.Error("error signing access token", zap.Error(err))
		return
	}

	h.setTokenCookie(w, accessToken, time.Now().Add(h.jwtConfig.AccessTokenTTL))

	writeJSON(w, http.StatusOK, schemas.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   time.Now().Add(h.jwtConfig.AccessTokenTTL).Unix(),
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.setTokenCookie(w, "", time.Unix(0, 0))
	writeJSON(w, http.StatusOK, schemas.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) generateToken(admin *models.Admin) (string, error) {
	claims := Claims{
		AdminID: admin.ID,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   admin.Login,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtConfig.SecretKey))
}

func (h *AuthHandler) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetAdminFromContext returns the authenticated admin set by the auth middleware.
func GetAdminFromContext(ctx context.Context) *models.Admin {
	if admin, ok := ctx.Value(AdminContextKey).(*models.Admin); ok {
		return admin
	}
	return nil
}

// actorFromRequest writes 401 and returns false when no admin is attached.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	admin := GetAdminFromContext(r.Context())
	if admin == nil {
		http.Error(w, "admin was not got", http.StatusUnauthorized)
		logger.Log.Error("admin was not got")
		return models.Actor{}, false
	}
	return admin.Actor(), true
}
