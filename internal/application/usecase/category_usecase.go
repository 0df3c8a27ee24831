package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

const defaultCategoryColor = "#6b7280"

// CategoryUseCase casos de uso CRUD para categorías de partners.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	partnerRepo repository.PartnerRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, partnerRepo repository.PartnerRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, partnerRepo: partnerRepo}
}

// Create crea una categoría. El nombre es obligatorio.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	color := in.Color
	if color == "" {
		color = defaultCategoryColor
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c, 0), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	counts, err := uc.partnerRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c, counts[c.ID]), nil
}

// Update reemplaza nombre, descripción y color.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c.Name = name
	c.Description = in.Description
	if in.Color != "" {
		c.Color = in.Color
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	counts, err := uc.partnerRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c, counts[c.ID]), nil
}

// List lista categorías con el número de partners de cada una.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.partnerRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c, counts[c.ID]))
	}
	return out, nil
}

// Delete elimina la categoría si ningún partner la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	counts, err := uc.partnerRepo.CountByCategory(ctx)
	if err != nil {
		return err
	}
	if counts[id] > 0 {
		return fmt.Errorf("%w: %d partners usan la categoría", domain.ErrHasDependents, counts[id])
	}
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category, partners int) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Color:        c.Color,
		PartnerCount: partners,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
