package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
	"github.com/jhoicas/Alianzas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	startupRepo repository.StartupRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, startupRepo repository.StartupRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, startupRepo: startupRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Si se indica startup_id,
// la cuenta STARTUP queda vinculada a esa startup (que no debe tener otra cuenta).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStartup
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var startup *entity.Startup
	if in.StartupID != "" {
		if role != entity.RoleStartup {
			return nil, fmt.Errorf("%w: solo las cuentas STARTUP se vinculan a una startup", domain.ErrInvalidInput)
		}
		startup, err = uc.startupRepo.GetByID(ctx, in.StartupID)
		if err != nil {
			return nil, err
		}
		if startup == nil {
			return nil, domain.ErrStartupNotFound
		}
		if startup.UserID != nil {
			return nil, fmt.Errorf("%w: la startup ya tiene una cuenta vinculada", domain.ErrConflict)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	startupID := ""
	if startup != nil {
		startup.UserID = &user.ID
		startup.UpdatedAt = now
		if err := uc.startupRepo.Update(ctx, startup); err != nil {
			return nil, err
		}
		startupID = startup.ID
	}
	return toUserResponse(user, startupID), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	startupID := ""
	if user.Role == entity.RoleStartup {
		st, err := uc.startupRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if st != nil {
			startupID = st.ID
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, startupID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user, startupID),
	}, nil
}

func toUserResponse(u *entity.User, startupID string) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		StartupID: startupID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
