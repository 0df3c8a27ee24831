package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

const reviewUniqueConstraint = "reviews_collaboration_uq"

// ReviewRepo implementación de ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

const reviewColumns = `r.id, r.collaboration_id, r.user_id, r.rating, r.comment, r.created_at`

func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reviews (id, collaboration_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.CollaborationID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, reviewUniqueConstraint) {
			return domain.ErrDuplicateReview
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCollaborationNotFound
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM reviews r WHERE r.id = $1`, id)
}

func (r *ReviewRepo) GetByCollaboration(ctx context.Context, collaborationID string) (*entity.Review, error) {
	if !validID(collaborationID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM reviews r WHERE r.collaboration_id = $1`, collaborationID)
}

func (r *ReviewRepo) getOne(ctx context.Context, query, arg string) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

// List filtra por colaboración o, vía join, por partner/startup de la colaboración.
func (r *ReviewRepo) List(ctx context.Context, f repository.ReviewFilter) ([]*entity.Review, error) {
	var (
		where []string
		args  []any
	)
	for _, cond := range []struct{ col, val string }{
		{"r.collaboration_id", f.CollaborationID},
		{"c.partner_id", f.PartnerID},
		{"c.startup_id", f.StartupID},
	} {
		if cond.val == "" {
			continue
		}
		if !validID(cond.val) {
			return []*entity.Review{}, nil
		}
		args = append(args, cond.val)
		where = append(where, fmt.Sprintf("%s = $%d", cond.col, len(args)))
	}
	query := `SELECT ` + reviewColumns + ` FROM reviews r JOIN collaborations c ON c.id = r.collaboration_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	list := []*entity.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func scanReview(row pgxScanner) (*entity.Review, error) {
	var rv entity.Review
	var rating int16
	if err := row.Scan(&rv.ID, &rv.CollaborationID, &rv.UserID, &rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return nil, err
	}
	rv.Rating = int(rating)
	return &rv, nil
}
