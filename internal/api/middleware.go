package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextUserKey     = "currentUser"
	ContextUserIDKey   = "userID"
	ContextUserRoleKey = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. Beyond
// signature and expiry checks it resolves the token subject against the
// user store, so tokens for deleted accounts stop working immediately.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	jwtSecret := authService.GetJWTSecret()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithFail(c, http.StatusUnauthorized, "you are not logged in")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithFail(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithFail(c, http.StatusUnauthorized, "token has expired")
			} else {
				abortWithFail(c, http.StatusUnauthorized, "invalid token")
			}
			return
		}
		if !token.Valid || claims.UserID == "" {
			abortWithFail(c, http.StatusUnauthorized, "invalid token or missing claims")
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserGone) {
				abortWithFail(c, http.StatusUnauthorized, service.ErrUserGone.Error())
			} else {
				abortWithError(c, http.StatusInternalServerError, "could not verify credentials")
			}
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID.Hex())
		c.Set(ContextUserRoleKey, user.Role)

		c.Next()
	}
}

// RoleMiddleware creates middleware to check if the user has one of the
// required roles. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getUserFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "user not found in context")
			return
		}

		for _, allowed := range allowedRoles {
			if user.Role == allowed {
				c.Next()
				return
			}
		}

		abortWithFail(c, http.StatusForbidden, "you do not have permission to perform this action")
	}
}

// getUserFromContext returns the authenticated user set by AuthMiddleware.
func getUserFromContext(c *gin.Context) (*domain.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	user, ok := raw.(*domain.User)
	if !ok {
		return nil, errors.New("invalid user type in context")
	}
	return user, nil
}
