package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CoachResponse struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	Coach CoachResponse `json:"coach"`
}

// MapCoachToResponse converts a domain.Coach to its DTO.
func MapCoachToResponse(coach *domain.Coach) CoachResponse {
	if coach == nil {
		return CoachResponse{}
	}
	return CoachResponse{Email: coach.Email, Role: coach.Role}
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in the coach
// @Description Authenticates the configured coach and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, coach, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not complete login")
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Coach: MapCoachToResponse(coach)})
}

// Me returns the authenticated coach.
func (h *AuthHandler) Me(c *gin.Context) {
	email, err := getCoachEmailFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get coach from token")
		return
	}
	c.JSON(http.StatusOK, CoachResponse{Email: email, Role: domain.RoleCoach})
}
