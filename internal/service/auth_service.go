package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// TokenIssuer is the JWT issuer claim.
const TokenIssuer = "coach-os"

// --- Service Interface ---
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, coach *domain.Coach, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService authenticates the single coach account from configuration.
type authService struct {
	coachEmail    string
	passwordHash  string
	jwtSecret     string
	jwtExpiration time.Duration
	clock         clock.Clock
}

// NewAuthService creates a new instance of authService.
func NewAuthService(coachEmail, passwordHash, jwtSecret string, jwtExpiration time.Duration, clk clock.Clock) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		coachEmail:    strings.ToLower(strings.TrimSpace(coachEmail)),
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		clock:         clk,
	}
}

// HashPassword returns the bcrypt hash stored in auth.coach_password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", validationError("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// Login checks the coach credentials and issues a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Coach, error) {
	// 1. Basic Input Validation
	if email == "" || password == "" {
		return "", nil, validationError("email and password cannot be empty")
	}

	// 2. Only the configured coach exists; compare the hash either way so the
	// response time does not reveal whether the email matched.
	emailOK := strings.ToLower(strings.TrimSpace(email)) == s.coachEmail
	hashErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
	if !emailOK || hashErr != nil {
		return "", nil, ErrAuthenticationFailed
	}

	// 3. Authentication successful - Generate JWT
	coach := &domain.Coach{Email: s.coachEmail, Role: domain.RoleCoach}
	token, err := s.generateJWT(coach)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, coach, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(coach *domain.Coach) (string, error) {
	now := s.clock.Now()
	claims := &jwtClaims{
		Email: coach.Email,
		Role:  coach.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   coach.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
