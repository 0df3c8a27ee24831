// Package collaboration implementa el ciclo de vida de las colaboraciones startup↔partner:
// creación con verificación de duplicados activos, transiciones administrativas y
// consultas con alcance por rol.
package collaboration

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/lifecycle"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
	"github.com/jhoicas/Alianzas-api/pkg/logger"
)

// UseCase casos de uso de colaboraciones.
type UseCase struct {
	collabRepo  repository.CollaborationRepository
	partnerRepo repository.PartnerRepository
	startupRepo repository.StartupRepository
	tx          TxRunner
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(
	collabRepo repository.CollaborationRepository,
	partnerRepo repository.PartnerRepository,
	startupRepo repository.StartupRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		collabRepo:  collabRepo,
		partnerRepo: partnerRepo,
		startupRepo: startupRepo,
		tx:          tx,
		log:         log,
	}
}

// Create registra una solicitud de colaboración. El estado inicial depende del tipo de
// servicio del partner. Falla con ErrDuplicateActiveCollaboration si el par ya tiene una activa.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCollaborationRequest) (*dto.CollaborationResponse, error) {
	startupID, err := resolveStartup(actor, in.StartupID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PartnerID) == "" {
		return nil, fmt.Errorf("%w: partner_id es obligatorio", domain.ErrInvalidInput)
	}

	partner, err := uc.partnerRepo.GetByID(ctx, in.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}
	if !partner.IsActive {
		return nil, fmt.Errorf("%w: el partner no está activo", domain.ErrInvalidInput)
	}
	startup, err := uc.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if startup == nil {
		return nil, domain.ErrStartupNotFound
	}

	now := time.Now()
	status, start, err := lifecycle.InitialState(partner.ServiceType, now)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = partner.Name
	}
	c := &entity.Collaboration{
		ID:        uuid.New().String(),
		StartupID: startup.ID,
		PartnerID: partner.ID,
		Title:     title,
		Status:    status,
		StartDate: start,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.RunCollaboration(ctx, func(repo repository.CollaborationRepository) error {
		active, err := repo.HasActive(ctx, startup.ID, partner.ID)
		if err != nil {
			return err
		}
		if active {
			return domain.ErrDuplicateActiveCollaboration
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("collaboration_id", c.ID).
		Str("startup_id", c.StartupID).
		Str("partner_id", c.PartnerID).
		Str("status", string(c.Status)).
		Msg("colaboración creada")

	return toResponse(c, startup, partner, actor.IsAdmin()), nil
}

// Update aplica un cambio de estado y/o actualiza las notas. Solo ADMIN.
// Estado y campos asociados se persisten en una sola escritura condicionada al estado leído.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateCollaborationRequest) (*dto.CollaborationResponse, error) {
	c, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCollaborationNotFound
	}
	if in.Status == "" && in.Notes == nil {
		return nil, fmt.Errorf("%w: nada que actualizar", domain.ErrInvalidInput)
	}

	from := c.Status
	now := time.Now()
	if in.Status != "" {
		target, ok := entity.ParseStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
		}
		cmd, err := lifecycle.CommandFor(target)
		if err != nil {
			return nil, err
		}
		params := lifecycle.Params{RejectionReason: in.RejectionReason, ActualSaving: in.ActualSaving}
		if err := lifecycle.Apply(c, cmd, params, now); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		c.Notes = in.Notes
		c.UpdatedAt = now
	}

	if err := uc.collabRepo.Update(ctx, c, from); err != nil {
		return nil, err
	}
	if c.Status != from {
		uc.log.Info().
			Str("collaboration_id", c.ID).
			Str("from", string(from)).
			Str("to", string(c.Status)).
			Msg("transición de colaboración")
	}

	startup, partner, err := uc.relations(ctx, c)
	if err != nil {
		return nil, err
	}
	return toResponse(c, startup, partner, true), nil
}

// GetByID devuelve la colaboración. Un actor STARTUP solo puede ver las suyas.
func (uc *UseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.CollaborationResponse, error) {
	c, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCollaborationNotFound
	}
	if !actor.CanAccessStartup(c.StartupID) {
		return nil, domain.ErrForbidden
	}
	startup, partner, err := uc.relations(ctx, c)
	if err != nil {
		return nil, err
	}
	return toResponse(c, startup, partner, actor.IsAdmin()), nil
}

// List lista colaboraciones. Para un actor STARTUP el filtro de startup se fuerza
// siempre a la suya, ignorando el que venga en la query.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, in dto.CollaborationFilter) ([]dto.CollaborationResponse, error) {
	filter := repository.CollaborationFilter{StartupID: in.StartupID, PartnerID: in.PartnerID}
	if !actor.IsAdmin() {
		if actor.StartupID == "" {
			return []dto.CollaborationResponse{}, nil
		}
		filter.StartupID = actor.StartupID
	}
	if in.Status != "" {
		st, ok := entity.ParseStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
		}
		filter.Status = st
	}
	return uc.list(ctx, filter, actor.IsAdmin())
}

// Recent devuelve las últimas n colaboraciones (vista de administrador).
func (uc *UseCase) Recent(ctx context.Context, n int) ([]dto.CollaborationResponse, error) {
	return uc.list(ctx, repository.CollaborationFilter{Limit: n}, true)
}

// Delete elimina una colaboración (y su reseña). Solo ADMIN.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCollaborationNotFound
	}
	if err := uc.collabRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("collaboration_id", id).Msg("colaboración eliminada")
	return nil
}

func (uc *UseCase) list(ctx context.Context, filter repository.CollaborationFilter, admin bool) ([]dto.CollaborationResponse, error) {
	list, err := uc.collabRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	// Más recientes primero
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	startups := map[string]*entity.Startup{}
	partners := map[string]*entity.Partner{}
	out := make([]dto.CollaborationResponse, 0, len(list))
	for _, c := range list {
		s, ok := startups[c.StartupID]
		if !ok {
			if s, err = uc.startupRepo.GetByID(ctx, c.StartupID); err != nil {
				return nil, err
			}
			startups[c.StartupID] = s
		}
		p, ok := partners[c.PartnerID]
		if !ok {
			if p, err = uc.partnerRepo.GetByID(ctx, c.PartnerID); err != nil {
				return nil, err
			}
			partners[c.PartnerID] = p
		}
		out = append(out, *toResponse(c, s, p, admin))
	}
	return out, nil
}

func (uc *UseCase) relations(ctx context.Context, c *entity.Collaboration) (*entity.Startup, *entity.Partner, error) {
	startup, err := uc.startupRepo.GetByID(ctx, c.StartupID)
	if err != nil {
		return nil, nil, err
	}
	partner, err := uc.partnerRepo.GetByID(ctx, c.PartnerID)
	if err != nil {
		return nil, nil, err
	}
	return startup, partner, nil
}

// resolveStartup toma la startup del token (STARTUP) o del body (ADMIN).
func resolveStartup(actor entity.Actor, requested string) (string, error) {
	switch actor.Role {
	case entity.RoleStartup:
		if actor.StartupID == "" {
			return "", fmt.Errorf("%w: la cuenta no tiene startup vinculada", domain.ErrForbidden)
		}
		return actor.StartupID, nil
	case entity.RoleAdmin:
		if strings.TrimSpace(requested) == "" {
			return "", fmt.Errorf("%w: startup_id es obligatorio", domain.ErrInvalidInput)
		}
		return requested, nil
	}
	return "", domain.ErrUnauthorized
}

// toResponse arma la respuesta; self_service_info solo se expone tras la activación o a un admin.
func toResponse(c *entity.Collaboration, s *entity.Startup, p *entity.Partner, admin bool) *dto.CollaborationResponse {
	actions := lifecycle.Allowed(c.Status)
	allowed := make([]string, len(actions))
	for i, a := range actions {
		allowed[i] = string(a)
	}
	out := &dto.CollaborationResponse{
		ID:              c.ID,
		StartupID:       c.StartupID,
		PartnerID:       c.PartnerID,
		Title:           c.Title,
		Status:          string(c.Status),
		IsTerminal:      c.Status.IsTerminal(),
		AllowedActions:  allowed,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		ActualSaving:    c.ActualSaving,
		RejectionReason: c.RejectionReason,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if s != nil {
		out.Startup = &dto.StartupSummary{ID: s.ID, Name: s.Name}
	}
	if p != nil {
		out.Partner = &dto.PartnerSummary{
			ID:              p.ID,
			Name:            p.Name,
			ServiceType:     string(p.ServiceType),
			EstimatedSaving: p.EstimatedSaving,
		}
		if admin || c.Status == entity.StatusSelfActivated {
			out.Partner.SelfServiceInfo = p.SelfServiceInfo
		}
	}
	return out
}
