package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

// ReviewUseCase reseñas de colaboraciones finalizadas (una por colaboración).
type ReviewUseCase struct {
	repo        repository.ReviewRepository
	collabRepo  repository.CollaborationRepository
	partnerRepo repository.PartnerRepository
	startupRepo repository.StartupRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	repo repository.ReviewRepository,
	collabRepo repository.CollaborationRepository,
	partnerRepo repository.PartnerRepository,
	startupRepo repository.StartupRepository,
) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, collabRepo: collabRepo, partnerRepo: partnerRepo, startupRepo: startupRepo}
}

// Create registra la reseña. La colaboración debe estar COMPLETED o SELF_ACTIVATED y,
// para un actor STARTUP, pertenecer a su startup.
func (uc *ReviewUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < entity.MinRating || in.Rating > entity.MaxRating {
		return nil, fmt.Errorf("%w: rating debe estar entre %d y %d", domain.ErrInvalidInput, entity.MinRating, entity.MaxRating)
	}
	c, err := uc.collabRepo.GetByID(ctx, in.CollaborationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCollaborationNotFound
	}
	if !actor.CanAccessStartup(c.StartupID) {
		return nil, domain.ErrForbidden
	}
	if !c.Status.IsFulfilled() {
		return nil, fmt.Errorf("%w: solo se pueden reseñar colaboraciones finalizadas (estado actual %s)", domain.ErrInvalidInput, c.Status)
	}
	existing, err := uc.repo.GetByCollaboration(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReview
	}

	rv := &entity.Review{
		ID:              uuid.New().String(),
		CollaborationID: c.ID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		CreatedAt:       time.Now(),
	}
	if actor.UserID != "" {
		uid := actor.UserID
		rv.UserID = &uid
	}
	// La restricción única de la BD cubre la carrera entre dos reseñas simultáneas.
	if err := uc.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, rv, c)
}

// List lista reseñas filtradas por colaboración, partner o startup.
func (uc *ReviewUseCase) List(ctx context.Context, in dto.ReviewFilter) ([]dto.ReviewResponse, error) {
	list, err := uc.repo.List(ctx, repository.ReviewFilter{
		CollaborationID: in.CollaborationID,
		PartnerID:       in.PartnerID,
		StartupID:       in.StartupID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(list))
	for _, rv := range list {
		c, err := uc.collabRepo.GetByID(ctx, rv.CollaborationID)
		if err != nil {
			return nil, err
		}
		resp, err := uc.toResponse(ctx, rv, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Delete elimina una reseña. Solo ADMIN.
func (uc *ReviewUseCase) Delete(ctx context.Context, id string) error {
	rv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ReviewUseCase) toResponse(ctx context.Context, rv *entity.Review, c *entity.Collaboration) (*dto.ReviewResponse, error) {
	out := &dto.ReviewResponse{
		ID:              rv.ID,
		CollaborationID: rv.CollaborationID,
		Rating:          rv.Rating,
		Comment:         rv.Comment,
		CreatedAt:       rv.CreatedAt,
	}
	if c == nil {
		return out, nil
	}
	out.PartnerID = c.PartnerID
	out.StartupID = c.StartupID
	p, err := uc.partnerRepo.GetByID(ctx, c.PartnerID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		out.PartnerName = p.Name
	}
	st, err := uc.startupRepo.GetByID(ctx, c.StartupID)
	if err != nil {
		return nil, err
	}
	if st != nil {
		out.StartupName = st.Name
	}
	return out, nil
}
