package service

import (
	"context"
	"errors"
	"log"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/repository"
	"lfmachado/gym-app/internal/validation"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// AuthError is an authentication failure carrying the backend error code
// consumed by the i18n translator.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return e.Code
}

// --- Error Definitions ---
var (
	ErrMissingEmail    = &AuthError{Code: "auth/missing-email"}
	ErrInvalidEmail    = &AuthError{Code: "auth/invalid-email"}
	ErrMissingPassword = &AuthError{Code: "auth/missing-password"}
	ErrWeakPassword    = &AuthError{Code: "auth/weak-password"}
	ErrEmailInUse      = &AuthError{Code: "auth/email-already-in-use"}
	ErrUserNotFound    = &AuthError{Code: "auth/user-not-found"}
	ErrUserDisabled    = &AuthError{Code: "auth/user-disabled"}
	ErrWrongPassword   = &AuthError{Code: "auth/wrong-password"}
	ErrBackendFailure  = &AuthError{Code: "auth/network-request-failed"}

	ErrResetTokenInvalid = errors.New("password reset token is invalid or expired")
	ErrTokenGeneration   = errors.New("failed to generate authentication token")
)

// AuthService owns trainer accounts and session tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string, admin int) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	SendPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetJWTSecret() string
}

type authService struct {
	userRepo      repository.UserRepository
	resetTokens   repository.ResetTokenRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, resetTokens repository.ResetTokenRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:      userRepo,
		resetTokens:   resetTokens,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a new trainer account with status 1 (active) and the
// given admin flag.
func (s *authService) Register(ctx context.Context, email, password string, admin int) (*domain.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: register lookup for %s: %v", email, err)
		return nil, ErrBackendFailure
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrBackendFailure
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Status:       domain.StatusActive,
		Admin:        admin,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the race between the lookup above and
		// this insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		log.Printf("ERROR: register insert for %s: %v", email, err)
		return nil, ErrBackendFailure
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a trainer and returns a signed JWT. The account is
// fetched and its status checked before the password is compared, so a
// disabled account is rejected even with wrong credentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, ErrMissingEmail
	}
	if password == "" {
		return "", nil, ErrMissingPassword
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		log.Printf("ERROR: login lookup for %s: %v", email, err)
		return "", nil, ErrBackendFailure
	}

	if !user.IsActive() {
		return "", nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrWrongPassword
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// SendPasswordReset mints a one-hour reset token for the account. A real
// deployment would mail it; here it is logged so operators can relay it.
func (s *authService) SendPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Printf("ERROR: password reset lookup for %s: %v", email, err)
		return ErrBackendFailure
	}

	token := uuid.NewString()
	if err := s.resetTokens.Save(ctx, token, user.ID, resetTokenTTL); err != nil {
		log.Printf("ERROR: saving reset token for %s: %v", email, err)
		return ErrBackendFailure
	}

	log.Printf("password reset token issued for %s: %s", email, token)
	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrMissingPassword
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	userID, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenExpired) {
			return ErrResetTokenInvalid
		}
		log.Printf("ERROR: consuming reset token: %v", err)
		return ErrBackendFailure
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrBackendFailure
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		log.Printf("ERROR: updating password for %s: %v", userID.Hex(), err)
		return ErrBackendFailure
	}
	return nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	Admin  int    `json:"admin"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Admin:  user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
