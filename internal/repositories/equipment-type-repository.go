package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const equipmentTypeTable = "equipment_types"
const equipmentTypeFields = "id, name, slug, created_at, updated_at"

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	FindBySlug(ctx context.Context, slug string) (*entities.EquipmentType, error)
	CreateEquipmentType(ctx context.Context, equipmentType entities.EquipmentType) (uint64, error)
	UpdateEquipmentType(ctx context.Context, id uint64, equipmentType entities.EquipmentType) error
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage}
}

func scanEquipmentType(row pgx.Row) (*entities.EquipmentType, error) {
	var t entities.EquipmentType
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment_type: %w", err)
	}
	return &t, nil
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(id) FROM %s", equipmentTypeTable)).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", equipmentTypeFields, equipmentTypeTable)
	args := []interface{}{}
	if filter.WithPagination && filter.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipmentTypes := make([]entities.EquipmentType, 0)
	for rows.Next() {
		equipmentType, err := scanEquipmentType(rows)
		if err != nil {
			return nil, 0, err
		}
		equipmentTypes = append(equipmentTypes, *equipmentType)
	}

	return equipmentTypes, total, rows.Err()
}

func (r *EquipmentTypeRepository) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentTypeFields, equipmentTypeTable)
	return scanEquipmentType(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentTypeRepository) FindBySlug(ctx context.Context, slug string) (*entities.EquipmentType, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE slug = $1", equipmentTypeFields, equipmentTypeTable)
	return scanEquipmentType(r.storage.QueryRow(ctx, query, slug))
}

func (r *EquipmentTypeRepository) CreateEquipmentType(ctx context.Context, equipmentType entities.EquipmentType) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`, equipmentTypeTable)

	var newID uint64
	err := r.storage.QueryRow(ctx, query, equipmentType.Name, equipmentType.Slug).Scan(&newID)
	return newID, err
}

func (r *EquipmentTypeRepository) UpdateEquipmentType(ctx context.Context, id uint64, equipmentType entities.EquipmentType) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, updated_at = NOW()
		WHERE id = $3
	`, equipmentTypeTable)

	result, err := r.storage.Exec(ctx, query, equipmentType.Name, equipmentType.Slug, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentTypeRepository) DeleteEquipmentType(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTypeTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
