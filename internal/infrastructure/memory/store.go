// Package memory implementa los puertos de persistencia en memoria.
// Uso exclusivo en tests: replica las restricciones del esquema PostgreSQL
// (índice único parcial de colaboraciones activas, reseña única, FKs RESTRICT).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var (
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.PartnerRepository       = (*PartnerRepo)(nil)
	_ repository.StartupRepository       = (*StartupRepo)(nil)
	_ repository.CollaborationRepository = (*CollaborationRepo)(nil)
	_ repository.ReviewRepository        = (*ReviewRepo)(nil)
	_ repository.ReportRepository        = (*ReportRepo)(nil)
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu             sync.RWMutex
	txMu           sync.Mutex
	users          map[string]entity.User
	categories     map[string]entity.Category
	partners       map[string]entity.Partner
	startups       map[string]entity.Startup
	collaborations map[string]entity.Collaboration
	reviews        map[string]entity.Review
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:          map[string]entity.User{},
		categories:     map[string]entity.Category{},
		partners:       map[string]entity.Partner{},
		startups:       map[string]entity.Startup{},
		collaborations: map[string]entity.Collaboration{},
		reviews:        map[string]entity.Review{},
	}
}

func (s *Store) Users() *UserRepo                   { return &UserRepo{s} }
func (s *Store) Categories() *CategoryRepo          { return &CategoryRepo{s} }
func (s *Store) Partners() *PartnerRepo             { return &PartnerRepo{s} }
func (s *Store) Startups() *StartupRepo             { return &StartupRepo{s} }
func (s *Store) Collaborations() *CollaborationRepo { return &CollaborationRepo{s} }
func (s *Store) Reviews() *ReviewRepo               { return &ReviewRepo{s} }
func (s *Store) Reports() *ReportRepo               { return &ReportRepo{s} }

// RunCollaboration serializa las "transacciones" de colaboraciones.
func (s *Store) RunCollaboration(ctx context.Context, fn func(repository.CollaborationRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Collaborations())
}

// RunStartup ejecuta fn con los repositorios de startups y usuarios. Si fn falla,
// se restauran ambos mapas al estado previo.
func (s *Store) RunStartup(ctx context.Context, fn func(repository.StartupRepository, repository.UserRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	users := make(map[string]entity.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	startups := make(map[string]entity.Startup, len(s.startups))
	for k, v := range s.startups {
		startups[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.Startups(), s.Users()); err != nil {
		s.mu.Lock()
		s.users, s.startups = users, startups
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Categories ───────────────────────────────────────────────────────────────

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.partners {
		if p.CategoryID != nil && *p.CategoryID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ── Partners ─────────────────────────────────────────────────────────────────

// PartnerRepo partners en memoria.
type PartnerRepo struct{ s *Store }

func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.partners[p.ID] = *p
	return nil
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.partners[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.partners[p.ID]; !ok {
		return domain.ErrPartnerNotFound
	}
	r.s.partners[p.ID] = *p
	return nil
}

func (r *PartnerRepo) List(ctx context.Context, f repository.PartnerFilter) ([]*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Partner{}
	for _, p := range r.s.partners {
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PartnerRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, p := range r.s.partners {
		if p.CategoryID != nil {
			out[*p.CategoryID]++
		}
	}
	return out, nil
}

func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.collaborations {
		if c.PartnerID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.partners, id)
	return nil
}

// ── Startups ─────────────────────────────────────────────────────────────────

// StartupRepo startups en memoria.
type StartupRepo struct{ s *Store }

func (r *StartupRepo) Create(ctx context.Context, st *entity.Startup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.startups[st.ID] = *st
	return nil
}

func (r *StartupRepo) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.startups[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r *StartupRepo) GetByUserID(ctx context.Context, userID string) (*entity.Startup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.startups {
		if st.UserID != nil && *st.UserID == userID {
			return &st, nil
		}
	}
	return nil, nil
}

func (r *StartupRepo) Update(ctx context.Context, st *entity.Startup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.startups[st.ID]; !ok {
		return domain.ErrStartupNotFound
	}
	r.s.startups[st.ID] = *st
	return nil
}

func (r *StartupRepo) List(ctx context.Context) ([]*entity.Startup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Startup, 0, len(r.s.startups))
	for _, st := range r.s.startups {
		st := st
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *StartupRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.collaborations {
		if c.StartupID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.startups, id)
	return nil
}

// ── Collaborations ───────────────────────────────────────────────────────────

// CollaborationRepo colaboraciones en memoria.
type CollaborationRepo struct{ s *Store }

func (r *CollaborationRepo) Create(ctx context.Context, c *entity.Collaboration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Status.IsActive() && r.hasActiveLocked(c.StartupID, c.PartnerID) {
		return domain.ErrDuplicateActiveCollaboration
	}
	r.s.collaborations[c.ID] = *c
	return nil
}

func (r *CollaborationRepo) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.collaborations[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CollaborationRepo) Update(ctx context.Context, c *entity.Collaboration, expected entity.CollaborationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.collaborations[c.ID]
	if !ok {
		return domain.ErrCollaborationNotFound
	}
	if cur.Status != expected {
		return domain.ErrConflict
	}
	r.s.collaborations[c.ID] = *c
	return nil
}

func (r *CollaborationRepo) List(ctx context.Context, f repository.CollaborationFilter) ([]*entity.Collaboration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Collaboration{}
	for _, c := range r.s.collaborations {
		if f.StartupID != "" && c.StartupID != f.StartupID {
			continue
		}
		if f.PartnerID != "" && c.PartnerID != f.PartnerID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *CollaborationRepo) HasActive(ctx context.Context, startupID, partnerID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.hasActiveLocked(startupID, partnerID), nil
}

func (r *CollaborationRepo) hasActiveLocked(startupID, partnerID string) bool {
	for _, c := range r.s.collaborations {
		if c.StartupID == startupID && c.PartnerID == partnerID && c.Status.IsActive() {
			return true
		}
	}
	return false
}

func (r *CollaborationRepo) CountByPartner(ctx context.Context, partnerID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.collaborations {
		if c.PartnerID == partnerID {
			n++
		}
	}
	return n, nil
}

func (r *CollaborationRepo) CountByStartup(ctx context.Context, startupID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.collaborations {
		if c.StartupID == startupID {
			n++
		}
	}
	return n, nil
}

func (r *CollaborationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.collaborations, id)
	for rid, rv := range r.s.reviews {
		if rv.CollaborationID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

// ── Reviews ──────────────────────────────────────────────────────────────────

// ReviewRepo reseñas en memoria.
type ReviewRepo struct{ s *Store }

func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.reviews {
		if x.CollaborationID == rv.CollaborationID {
			return domain.ErrDuplicateReview
		}
	}
	r.s.reviews[rv.ID] = *rv
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if rv, ok := r.s.reviews[id]; ok {
		return &rv, nil
	}
	return nil, nil
}

func (r *ReviewRepo) GetByCollaboration(ctx context.Context, collaborationID string) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.CollaborationID == collaborationID {
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *ReviewRepo) List(ctx context.Context, f repository.ReviewFilter) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Review{}
	for _, rv := range r.s.reviews {
		if f.CollaborationID != "" && rv.CollaborationID != f.CollaborationID {
			continue
		}
		if f.PartnerID != "" || f.StartupID != "" {
			c, ok := r.s.collaborations[rv.CollaborationID]
			if !ok {
				continue
			}
			if f.PartnerID != "" && c.PartnerID != f.PartnerID {
				continue
			}
			if f.StartupID != "" && c.StartupID != f.StartupID {
				continue
			}
		}
		rv := rv
		out = append(out, &rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reviews, id)
	return nil
}

// ── Report ───────────────────────────────────────────────────────────────────

// ReportRepo consulta del reporte sobre el estado en memoria.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) ListReportRows(ctx context.Context, period impact.Period) ([]impact.Row, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ratings := map[string]int{}
	for _, rv := range r.s.reviews {
		ratings[rv.CollaborationID] = rv.Rating
	}

	rows := []impact.Row{}
	for _, c := range r.s.collaborations {
		if !period.Contains(c.CreatedAt) {
			continue
		}
		row := impact.Row{
			CollaborationID: c.ID,
			StartupID:       c.StartupID,
			PartnerID:       c.PartnerID,
			Status:          c.Status,
			ActualSaving:    c.ActualSaving,
			CreatedAt:       c.CreatedAt,
		}
		if st, ok := r.s.startups[c.StartupID]; ok {
			row.Startup = &impact.StartupRef{ID: st.ID, Name: st.Name}
		}
		if p, ok := r.s.partners[c.PartnerID]; ok {
			row.Partner = &impact.PartnerRef{ID: p.ID, Name: p.Name, ServiceType: p.ServiceType, EstimatedSaving: p.EstimatedSaving}
			if p.CategoryID != nil {
				if cat, ok := r.s.categories[*p.CategoryID]; ok {
					row.Category = &impact.CategoryRef{ID: cat.ID, Name: cat.Name}
				}
			}
		}
		if rating, ok := ratings[c.ID]; ok {
			v := rating
			row.Rating = &v
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}
