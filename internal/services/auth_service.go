package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"molove/internal/models"
	"molove/internal/repositories"
)

// ErrInvalidCredentials is returned for any failed login without revealing
// whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates JWT tokens for the admin panel. There is
// no self-service registration; the admin account is seeded at startup.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// EnsureAdmin creates the admin account when missing or refreshes its
// password hash when the configured password changed.
func (s *AuthService) EnsureAdmin(username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		user := &models.User{Username: username, Password: string(hashed)}
		if err := s.userRepo.Create(user); err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		log.Printf("auth: seeded admin account %q", username)
		return nil
	}

	if bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(password)) != nil {
		existing.Password = string(hashed)
		if err := s.userRepo.Update(existing); err != nil {
			return fmt.Errorf("failed to rotate admin password: %w", err)
		}
		log.Printf("auth: rotated password for admin account %q", username)
	}
	return nil
}

// Login authenticates the admin and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
