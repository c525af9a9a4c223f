package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal0/nexo/internal/domain"
)

type BadgeRepo struct {
	pool *pgxpool.Pool
}

func NewBadgeRepo(pool *pgxpool.Pool) *BadgeRepo {
	return &BadgeRepo{pool: pool}
}

func (r *BadgeRepo) Create(ctx context.Context, badge *domain.Badge) error {
	query := `INSERT INTO user_badges (id, title, theme, owner_id) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, badge.ID, badge.Title, badge.Theme, badge.OwnerID)
	return err
}

func (r *BadgeRepo) GetByOwner(ctx context.Context, ownerID string) (*domain.Badge, error) {
	var b domain.Badge
	err := r.pool.QueryRow(ctx,
		"SELECT id, title, theme, owner_id FROM user_badges WHERE owner_id = $1",
		ownerID,
	).Scan(&b.ID, &b.Title, &b.Theme, &b.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BadgeRepo) Update(ctx context.Context, badge *domain.Badge) error {
	query := `UPDATE user_badges SET title = $1, theme = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, badge.Title, badge.Theme, badge.ID)
	return err
}
