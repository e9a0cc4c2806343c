package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
	"trackd/internal/infrastructure/auth"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/utils"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"
)

// AuthMiddleware verifies bearer tokens and mirrors the authenticated
// account into the local user table so display names resolve without a
// round trip to the identity provider.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.UserRepository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		m.mirror(c, claims)

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyActor, tracker.UserActor(claims.UserID))

		c.Next()
	}
}

// OptionalAuth resolves an actor when a valid token is present and falls
// back to the anonymous actor otherwise. Routes behind it decide access by
// permission mask, not by authentication.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyActor, tracker.AnonymousActor())

		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		m.mirror(c, claims)

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyActor, tracker.UserActor(claims.UserID))

		c.Next()
	}
}

// mirror refreshes the local copy of the account named in the claims. A
// failed upsert is logged and ignored; authorization only needs the id.
func (m *AuthMiddleware) mirror(c *gin.Context, claims *auth.Claims) {
	u, err := user.NewUser(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		m.logger.Warnw("invalid identity claims", "user_id", claims.UserID, "error", err)
		return
	}
	if err := m.userRepo.Upsert(c.Request.Context(), u); err != nil {
		m.logger.Errorw("failed to mirror user", "user_id", claims.UserID, "error", err)
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// CurrentActor returns the actor resolved by the auth middleware. Routes
// without auth middleware see the anonymous actor.
func CurrentActor(c *gin.Context) tracker.Actor {
	if v, ok := c.Get(ContextKeyActor); ok {
		if actor, ok := v.(tracker.Actor); ok {
			return actor
		}
	}
	return tracker.AnonymousActor()
}

// CurrentUserID returns the authenticated user id, or false when anonymous.
func CurrentUserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	return 0, false
}
