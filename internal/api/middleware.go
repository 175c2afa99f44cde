package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/generator"
	"functionallab/coach-os/internal/service"
)

// Constants for context keys
const (
	ContextCoachEmailKey = "coachEmail"
	ContextCoachRoleKey  = "coachRole"
)

// jwtClaims defines the structure we expect in the JWT payload.
// Mirroring the structure used in authService.generateJWT
type jwtClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.Email == "" || claims.Role != domain.RoleCoach {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextCoachEmailKey, claims.Email)
		c.Set(ContextCoachRoleKey, claims.Role)
		c.Next()
	}
}

// RequestLogger logs one line per request with zerolog.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			evt = logger.Error()
		case status >= http.StatusBadRequest:
			evt = logger.Warn()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("HTTP request")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondServiceError maps service and generator errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrInvalidImport):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrNoActiveCycle),
		errors.Is(err, service.ErrNoAnnualPlan):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGenerationInProgress):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConfirmationRequired):
		abortWithError(c, http.StatusPreconditionRequired, "Add ?confirm=true to perform this action")
	case errors.Is(err, service.ErrBackupsDisabled):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, generator.ErrQuota):
		abortWithError(c, http.StatusTooManyRequests, "Generator quota exhausted, try again later")
	case errors.Is(err, generator.ErrAuth), errors.Is(err, generator.ErrEmptyResponse):
		abortWithError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, generator.ErrNetwork):
		abortWithError(c, http.StatusServiceUnavailable, "Generator unreachable, try again")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// confirmed reads the ?confirm= flag of destructive requests.
func confirmed(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.Query("confirm"))
	return err == nil && v
}

// Helper function to get the coach email from context (used by handlers)
func getCoachEmailFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextCoachEmailKey)
	if !exists {
		return "", errors.New("coach email not found in context")
	}
	email, ok := raw.(string)
	if !ok {
		return "", errors.New("invalid coach email type in context")
	}
	return email, nil
}
