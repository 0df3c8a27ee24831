// Package analytics contiene el resumen del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

const dashboardRecent = 5 // colaboraciones recientes en el widget del dashboard

// RecentCollaborations fuente de las últimas colaboraciones ya resueltas (startup/partner).
type RecentCollaborations interface {
	Recent(ctx context.Context, n int) ([]dto.CollaborationResponse, error)
}

// DashboardUseCase genera los KPIs del programa para el administrador.
type DashboardUseCase struct {
	partnerRepo repository.PartnerRepository
	startupRepo repository.StartupRepository
	collabRepo  repository.CollaborationRepository
	reviewRepo  repository.ReviewRepository
	recent      RecentCollaborations
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	partnerRepo repository.PartnerRepository,
	startupRepo repository.StartupRepository,
	collabRepo repository.CollaborationRepository,
	reviewRepo repository.ReviewRepository,
	recent RecentCollaborations,
) *DashboardUseCase {
	return &DashboardUseCase{
		partnerRepo: partnerRepo,
		startupRepo: startupRepo,
		collabRepo:  collabRepo,
		reviewRepo:  reviewRepo,
		recent:      recent,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. partners activos
//  2. startups
//  3. colaboraciones (conteos por estado)
//  4. reseñas (promedio)
//
// Las recientes se piden después, ya que resuelven relaciones por su cuenta.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type collabResult struct {
		list []*entity.Collaboration
		err  error
	}
	type ratingResult struct {
		avg float64
		err error
	}

	partnersCh := make(chan countResult, 1)
	startupsCh := make(chan countResult, 1)
	collabsCh := make(chan collabResult, 1)
	ratingCh := make(chan ratingResult, 1)

	go func() {
		active := true
		list, err := uc.partnerRepo.List(ctx, repository.PartnerFilter{IsActive: &active})
		partnersCh <- countResult{len(list), err}
	}()
	go func() {
		list, err := uc.startupRepo.List(ctx)
		startupsCh <- countResult{len(list), err}
	}()
	go func() {
		list, err := uc.collabRepo.List(ctx, repository.CollaborationFilter{})
		collabsCh <- collabResult{list, err}
	}()
	go func() {
		list, err := uc.reviewRepo.List(ctx, repository.ReviewFilter{})
		if err != nil {
			ratingCh <- ratingResult{err: err}
			return
		}
		ratingCh <- ratingResult{avg: averageRating(list)}
	}()

	partners := <-partnersCh
	startups := <-startupsCh
	collabs := <-collabsCh
	rating := <-ratingCh

	if partners.err != nil {
		return nil, fmt.Errorf("dashboard: partners: %w", partners.err)
	}
	if startups.err != nil {
		return nil, fmt.Errorf("dashboard: startups: %w", startups.err)
	}
	if collabs.err != nil {
		return nil, fmt.Errorf("dashboard: colaboraciones: %w", collabs.err)
	}
	if rating.err != nil {
		return nil, fmt.Errorf("dashboard: reseñas: %w", rating.err)
	}

	out := &dto.DashboardSummaryDTO{
		ActivePartners:      partners.n,
		TotalStartups:       startups.n,
		TotalCollaborations: len(collabs.list),
		AvgRating:           rating.avg,
	}
	for _, c := range collabs.list {
		switch {
		case c.Status.IsFulfilled():
			out.CompletedCollaborations++
		case c.Status == entity.StatusRequested || c.Status == entity.StatusReviewing:
			out.RequestedCollaborations++
		case c.Status == entity.StatusInProgress:
			out.InProgressCollaborations++
		}
	}

	recent, err := uc.recent.Recent(ctx, dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("dashboard: recientes: %w", err)
	}
	out.RecentCollaborations = recent
	return out, nil
}

// averageRating promedio con 1 decimal; 0 sin reseñas.
func averageRating(list []*entity.Review) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(list))*10) / 10
}
