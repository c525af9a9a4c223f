package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal0/nexo/internal/domain"
)

type CustomFieldRepo struct {
	pool *pgxpool.Pool
}

func NewCustomFieldRepo(pool *pgxpool.Pool) *CustomFieldRepo {
	return &CustomFieldRepo{pool: pool}
}

func (r *CustomFieldRepo) Create(ctx context.Context, field *domain.CustomField) error {
	query := `
		INSERT INTO user_custom_fields (id, title, value, is_visible, owner_id)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		field.ID, field.Title, field.Value, field.IsVisible, field.OwnerID,
	)
	return err
}

// GetByIDAndOwner scopes the lookup to the owner so a foreign field behaves
// exactly like a missing one.
func (r *CustomFieldRepo) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.CustomField, error) {
	var f domain.CustomField
	err := r.pool.QueryRow(ctx,
		"SELECT id, title, value, is_visible, owner_id FROM user_custom_fields WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&f.ID, &f.Title, &f.Value, &f.IsVisible, &f.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *CustomFieldRepo) Update(ctx context.Context, field *domain.CustomField) error {
	query := `UPDATE user_custom_fields SET title = $1, value = $2, is_visible = $3 WHERE id = $4 AND owner_id = $5`
	_, err := r.pool.Exec(ctx, query, field.Title, field.Value, field.IsVisible, field.ID, field.OwnerID)
	return err
}

func (r *CustomFieldRepo) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM user_custom_fields WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CustomFieldRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM user_custom_fields WHERE owner_id = $1",
		ownerID,
	).Scan(&count)
	return count, err
}

func (r *CustomFieldRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.CustomField, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, title, value, is_visible, owner_id FROM user_custom_fields WHERE owner_id = $1 ORDER BY id",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []domain.CustomField
	for rows.Next() {
		var f domain.CustomField
		if err := rows.Scan(&f.ID, &f.Title, &f.Value, &f.IsVisible, &f.OwnerID); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
