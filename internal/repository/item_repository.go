package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spec-kit/items-api/internal/domain"
)

// ItemRepository manages items scoped by owner.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, ownerID, id string) error
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository constructs repository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (id, owner_id, title, description)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`
	return r.db.QueryRowContext(ctx, query,
		item.ID,
		item.OwnerID,
		item.Title,
		item.Description,
	).Scan(&item.CreatedAt)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	const query = `
        SELECT id, owner_id, title, description, created_at
        FROM items WHERE owner_id=$1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var (
			item domain.Item
			desc sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &desc, &item.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			item.Description = &desc.String
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update rewrites title and description of an item the owner holds.
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET title=$1, description=$2
        WHERE id=$3 AND owner_id=$4
        RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.Title,
		item.Description,
		item.ID,
		item.OwnerID,
	).Scan(&item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *itemRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `
        DELETE FROM items
        WHERE id=$1 AND owner_id=$2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
