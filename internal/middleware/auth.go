package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token, then resolves the user's
// current role and rights through the verified-user cache. Suspended
// users are turned away here.
func AuthMiddleware(
	cfg *config.Config,
	users user.Repository,
	cache user.VerifiedCache,
	log zerolog.Logger,
) gin.HandlerFunc {
	log = log.With().Str("component", "auth").Logger()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "expected a bearer token")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "token claims are unreadable")
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "token subject is missing")
			return
		}
		userID := uint(sub)

		verified, err := cache.Get(c.Request.Context(), userID)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("verified user cache read failed")
		}
		if verified == nil {
			u, err := users.GetByID(c.Request.Context(), userID)
			if errors.Is(err, user.ErrNotFound) {
				httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "token subject no longer exists")
				return
			}
			if err != nil {
				httperr.Abort(c, http.StatusInternalServerError, "internal_error", "could not load user")
				return
			}
			v := user.VerifiedFrom(u)
			verified = &v
			if err := cache.Put(c.Request.Context(), v); err != nil {
				log.Warn().Err(err).Uint("user_id", userID).Msg("verified user cache write failed")
			}
		}

		if verified.Rights == string(attendance.RightsSuspended) {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "account is suspended")
			return
		}

		c.Set(ContextUserID, verified.ID)
		c.Set(ContextUserRole, verified.Role)

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "admin only")
			return
		}
		c.Next()
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == models.RoleAdmin
}
