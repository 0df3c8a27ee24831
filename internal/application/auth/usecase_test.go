package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alianzas-api/internal/application/auth"
	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Alianzas-api/pkg/jwt"
)

const secret = "test-secret"

func newUC(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), store.Startups(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestRegisterYLogin_StartupLlevaStartupIDEnElToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Startups().Create(ctx, &entity.Startup{ID: "s-1", Name: "Alpha", CreatedAt: time.Now()}))
	uc := newUC(store)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Founder@Alpha.io", Password: "password1", StartupID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStartup, u.Role)
	assert.Equal(t, "s-1", u.StartupID)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "founder@alpha.io", Password: "password1"})
	require.NoError(t, err)

	userID, startupID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "s-1", startupID)
	assert.Equal(t, entity.RoleStartup, role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "otro@alpha.io", Password: "password1", StartupID: "s-1"})
	assert.ErrorIs(t, err, domain.ErrConflict, "una cuenta por startup")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUC(store)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@acc.io", Password: "password1", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@acc.io", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@acc.io", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@acc.io", Password: "password1"})
	require.NoError(t, err)
	assert.Empty(t, out.User.StartupID)
}

func TestRegister_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newUC(memory.NewStore())

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.io", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.io", Password: "password1", Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.io", Password: "password1", Role: entity.RoleAdmin, StartupID: "s-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.io", Password: "password1", StartupID: "s-x"})
	assert.ErrorIs(t, err, domain.ErrStartupNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@y.io", Password: "password1"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "X@Y.io", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
