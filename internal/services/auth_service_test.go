package services_test

import (
	"testing"

	"molove/internal/repositories"
	"molove/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_EnsureAdminAndLogin(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := services.NewAuthService(repo, "test_jwt_secret")

	assert.NoError(t, svc.EnsureAdmin("admin", "secret-pass"))

	token, err := svc.Login("admin", "secret-pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])

	_, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := services.NewAuthService(repo, "test_jwt_secret")

	assert.NoError(t, svc.EnsureAdmin("admin", "secret-pass"))
	assert.NoError(t, svc.EnsureAdmin("admin", "secret-pass"))

	// Changing the configured password rotates the stored hash.
	assert.NoError(t, svc.EnsureAdmin("admin", "rotated-pass"))
	_, err := svc.Login("admin", "secret-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	token, err := svc.Login("admin", "rotated-pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_ValidateTokenRejectsForeignSecret(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	issuer := services.NewAuthService(repo, "secret-a")
	verifier := services.NewAuthService(repo, "secret-b")

	assert.NoError(t, issuer.EnsureAdmin("admin", "secret-pass"))
	token, err := issuer.Login("admin", "secret-pass")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
