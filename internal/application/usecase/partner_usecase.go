package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

// PartnerUseCase casos de uso CRUD para partners.
type PartnerUseCase struct {
	repo         repository.PartnerRepository
	categoryRepo repository.CategoryRepository
	collabRepo   repository.CollaborationRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(
	repo repository.PartnerRepository,
	categoryRepo repository.CategoryRepository,
	collabRepo repository.CollaborationRepository,
) *PartnerUseCase {
	return &PartnerUseCase{repo: repo, categoryRepo: categoryRepo, collabRepo: collabRepo}
}

// Create crea un partner. Valida nombre, tipo de servicio, categoría y ahorro estimado.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	st := entity.ServiceType(in.ServiceType)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: service_type debe ser SELF_SERVICE o APPROVAL_REQUIRED", domain.ErrInvalidInput)
	}
	if err := validateSaving(in.EstimatedSaving); err != nil {
		return nil, err
	}
	categoryID := normalizeID(in.CategoryID)
	category, err := uc.resolveCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	p := &entity.Partner{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     in.Description,
		CategoryID:      categoryID,
		ServiceType:     st,
		Benefits:        in.Benefits,
		UsageGuide:      in.UsageGuide,
		SelfServiceInfo: in.SelfServiceInfo,
		EstimatedSaving: in.EstimatedSaving,
		ContactName:     in.ContactName,
		ContactEmail:    in.ContactEmail,
		Website:         in.Website,
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p, category, true), nil
}

// GetByID obtiene un partner. Para no administradores, el partner inactivo no existe
// y self_service_info no se expone.
func (uc *PartnerUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.PartnerResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.IsActive && !actor.IsAdmin()) {
		return nil, domain.ErrPartnerNotFound
	}
	var category *entity.Category
	if p.CategoryID != nil {
		if category, err = uc.categoryRepo.GetByID(ctx, *p.CategoryID); err != nil {
			return nil, err
		}
	}
	return toPartnerResponse(p, category, actor.IsAdmin()), nil
}

// Update aplica una actualización parcial.
func (uc *PartnerUseCase) Update(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPartnerNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.ServiceType != nil {
		st := entity.ServiceType(*in.ServiceType)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: service_type debe ser SELF_SERVICE o APPROVAL_REQUIRED", domain.ErrInvalidInput)
		}
		p.ServiceType = st
	}
	if in.EstimatedSaving != nil {
		if err := validateSaving(in.EstimatedSaving); err != nil {
			return nil, err
		}
		p.EstimatedSaving = in.EstimatedSaving
	}
	if in.CategoryID != nil {
		p.CategoryID = normalizeID(in.CategoryID)
	}
	category, err := uc.resolveCategory(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	setString(&p.Description, in.Description)
	setString(&p.Benefits, in.Benefits)
	setString(&p.UsageGuide, in.UsageGuide)
	setString(&p.ContactName, in.ContactName)
	setString(&p.ContactEmail, in.ContactEmail)
	setString(&p.Website, in.Website)
	if in.SelfServiceInfo != nil {
		p.SelfServiceInfo = normalizeID(in.SelfServiceInfo)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p, category, true), nil
}

// List lista partners. Los no administradores solo ven el catálogo activo.
func (uc *PartnerUseCase) List(ctx context.Context, actor entity.Actor, in dto.PartnerFilter) ([]dto.PartnerResponse, error) {
	filter := repository.PartnerFilter{CategoryID: in.CategoryID}
	switch in.Active {
	case "true":
		v := true
		filter.IsActive = &v
	case "false":
		v := false
		filter.IsActive = &v
	case "":
	default:
		return nil, fmt.Errorf("%w: active debe ser true o false", domain.ErrInvalidInput)
	}
	if !actor.IsAdmin() {
		v := true
		filter.IsActive = &v
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	out := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		var cat *entity.Category
		if p.CategoryID != nil {
			cat = byID[*p.CategoryID]
		}
		out = append(out, *toPartnerResponse(p, cat, actor.IsAdmin()))
	}
	return out, nil
}

// Delete elimina el partner si no tiene colaboraciones.
func (uc *PartnerUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrPartnerNotFound
	}
	n, err := uc.collabRepo.CountByPartner(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el partner tiene %d colaboraciones", domain.ErrHasDependents, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PartnerUseCase) resolveCategory(ctx context.Context, id *string) (*entity.Category, error) {
	if id == nil {
		return nil, nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, *id)
	}
	return c, nil
}

func validateSaving(d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return fmt.Errorf("%w: estimated_saving no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// normalizeID convierte "" en nil.
func normalizeID(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func toPartnerResponse(p *entity.Partner, c *entity.Category, admin bool) *dto.PartnerResponse {
	out := &dto.PartnerResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		ServiceType:     string(p.ServiceType),
		Benefits:        p.Benefits,
		UsageGuide:      p.UsageGuide,
		EstimatedSaving: p.EstimatedSaving,
		ContactName:     p.ContactName,
		ContactEmail:    p.ContactEmail,
		Website:         p.Website,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if c != nil {
		out.CategoryName = c.Name
	}
	if admin {
		out.SelfServiceInfo = p.SelfServiceInfo
	}
	return out
}
