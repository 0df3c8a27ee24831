package usecase

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
)

const minPasswordLength = 8

// StartupUseCase casos de uso CRUD para startups del portafolio.
type StartupUseCase struct {
	repo       repository.StartupRepository
	collabRepo repository.CollaborationRepository
	tx         StartupTxRunner
}

// NewStartupUseCase construye el caso de uso.
func NewStartupUseCase(repo repository.StartupRepository, collabRepo repository.CollaborationRepository, tx StartupTxRunner) *StartupUseCase {
	return &StartupUseCase{repo: repo, collabRepo: collabRepo, tx: tx}
}

// Create crea la startup. Si se informa account_email, crea en la misma transacción
// una cuenta STARTUP vinculada (password hasheado con bcrypt).
func (uc *StartupUseCase) Create(ctx context.Context, in dto.CreateStartupRequest) (*dto.StartupResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	st := &entity.Startup{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  in.Description,
		Category:     in.Category,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		Website:      in.Website,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var user *entity.User
	if email := strings.TrimSpace(in.AccountEmail); email != "" {
		if len(in.AccountPassword) < minPasswordLength {
			return nil, fmt.Errorf("%w: account_password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.AccountPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        strings.ToLower(email),
			PasswordHash: string(hash),
			Name:         name,
			Role:         entity.RoleStartup,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		st.UserID = &user.ID
	}

	err := uc.tx.RunStartup(ctx, func(startupRepo repository.StartupRepository, userRepo repository.UserRepository) error {
		if user != nil {
			if err := userRepo.Create(ctx, user); err != nil {
				return err
			}
		}
		return startupRepo.Create(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return toStartupResponse(st), nil
}

// GetByID obtiene una startup. Un actor STARTUP solo puede ver la suya.
func (uc *StartupUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.StartupResponse, error) {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrStartupNotFound
	}
	if !actor.CanAccessStartup(st.ID) {
		return nil, domain.ErrForbidden
	}
	return toStartupResponse(st), nil
}

// Update aplica una actualización parcial.
func (uc *StartupUseCase) Update(ctx context.Context, id string, in dto.UpdateStartupRequest) (*dto.StartupResponse, error) {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrStartupNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		st.Name = name
	}
	setString(&st.Description, in.Description)
	setString(&st.Category, in.Category)
	setString(&st.ContactName, in.ContactName)
	setString(&st.ContactEmail, in.ContactEmail)
	setString(&st.Website, in.Website)
	st.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return toStartupResponse(st), nil
}

// List lista todas las startups.
func (uc *StartupUseCase) List(ctx context.Context) ([]dto.StartupResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StartupResponse, 0, len(list))
	for _, st := range list {
		out = append(out, *toStartupResponse(st))
	}
	return out, nil
}

// Delete elimina la startup si no tiene colaboraciones.
func (uc *StartupUseCase) Delete(ctx context.Context, id string) error {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.ErrStartupNotFound
	}
	n, err := uc.collabRepo.CountByStartup(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la startup tiene %d colaboraciones", domain.ErrHasDependents, n)
	}
	return uc.repo.Delete(ctx, id)
}

func toStartupResponse(st *entity.Startup) *dto.StartupResponse {
	return &dto.StartupResponse{
		ID:           st.ID,
		Name:         st.Name,
		Description:  st.Description,
		Category:     st.Category,
		ContactName:  st.ContactName,
		ContactEmail: st.ContactEmail,
		Website:      st.Website,
		UserID:       st.UserID,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
}
