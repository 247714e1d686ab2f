package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"warung/internal/models"
	"warung/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// AuthService handles registration, login, token validation and the
// password-reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	publisher  EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	baseURL    string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, jwtSecret, baseURL string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		publisher:  publisher,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		baseURL:    baseURL,
	}
}

// RegisterUser registers a new user with an empty cart, hashes the password
// and enqueues a welcome email. The response does not wait for the email.
func (s *AuthService) RegisterUser(email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publishEmail(s.publisher, EmailEvent{
		To:      email,
		Subject: "Sign up successful!",
		Body:    "<h1>You successfully signed up!</h1>",
	})

	return user, nil
}

// LoginUser authenticates a user and returns a signed token. Unknown email
// and wrong password both yield ErrInvalidCredentials so the response does
// not reveal which one it was.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning the claims
// if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// RequestPasswordReset issues a single-use reset token valid for one hour and
// enqueues the reset link email.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("account with email %s: %w", email, ErrNotFound)
		}
		return fmt.Errorf("failed to look up account for reset: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().Add(resetTokenTTL)

	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	publishEmail(s.publisher, EmailEvent{
		To:      email,
		Subject: "Reset Password",
		Body: fmt.Sprintf(
			`<p>You requested a password reset</p><p>Click this <a href="%s/api/v1/auth/reset/%s">link</a> to set a new password, it is valid for an hour</p>`,
			s.baseURL, token,
		),
	})

	return nil
}

// ResolveResetToken returns the user holding the token if it is still inside
// its validity window.
func (s *AuthService) ResolveResetToken(token string) (*models.User, error) {
	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("failed to resolve reset token: %w", err)
	}
	if !user.HasValidResetToken(token, time.Now()) {
		return nil, ErrInvalidResetToken
	}
	return user, nil
}

// ResetPassword sets a new password for the user identified by the token.
// The token must match the given user and is cleared on success, so it can
// never authorize a second change.
func (s *AuthService) ResetPassword(userID, token, newPassword string) error {
	user, err := s.ResolveResetToken(token)
	if err != nil {
		return err
	}
	if user.ID != userID {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
