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

const specificationTable = "equipment_specifications"
const specificationFields = "id, type_id, name, specs, created_at, updated_at"

type SpecificationRepositoryInterface interface {
	GetSpecifications(ctx context.Context, filter types.Filter) ([]entities.EquipmentSpecification, uint64, error)
	GetByType(ctx context.Context, typeID uint64) ([]entities.EquipmentSpecification, error)
	FindSpecification(ctx context.Context, id uint64) (*entities.EquipmentSpecification, error)
	CreateSpecification(ctx context.Context, spec entities.EquipmentSpecification) (uint64, error)
	UpdateSpecification(ctx context.Context, id uint64, spec entities.EquipmentSpecification) error
	DeleteSpecification(ctx context.Context, id uint64) error
}

type SpecificationRepository struct {
	storage *pgxpool.Pool
}

func NewSpecificationRepository(storage *pgxpool.Pool) SpecificationRepositoryInterface {
	return &SpecificationRepository{storage: storage}
}

func scanSpecification(row pgx.Row) (*entities.EquipmentSpecification, error) {
	var s entities.EquipmentSpecification
	err := row.Scan(&s.ID, &s.TypeID, &s.Name, &s.Specs, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования specification: %w", err)
	}
	return &s, nil
}

func (r *SpecificationRepository) GetSpecifications(ctx context.Context, filter types.Filter) ([]entities.EquipmentSpecification, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(id) FROM %s", specificationTable)).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", specificationFields, specificationTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	specs := make([]entities.EquipmentSpecification, 0)
	for rows.Next() {
		spec, err := scanSpecification(rows)
		if err != nil {
			return nil, 0, err
		}
		specs = append(specs, *spec)
	}

	return specs, total, rows.Err()
}

func (r *SpecificationRepository) GetByType(ctx context.Context, typeID uint64) ([]entities.EquipmentSpecification, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE type_id = $1 ORDER BY name", specificationFields, specificationTable)

	rows, err := r.storage.Query(ctx, query, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := make([]entities.EquipmentSpecification, 0)
	for rows.Next() {
		spec, err := scanSpecification(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}

	return specs, rows.Err()
}

func (r *SpecificationRepository) FindSpecification(ctx context.Context, id uint64) (*entities.EquipmentSpecification, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", specificationFields, specificationTable)
	return scanSpecification(r.storage.QueryRow(ctx, query, id))
}

func (r *SpecificationRepository) CreateSpecification(ctx context.Context, spec entities.EquipmentSpecification) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (type_id, name, specs, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, specificationTable)

	var newID uint64
	err := r.storage.QueryRow(ctx, query, spec.TypeID, spec.Name, spec.Specs).Scan(&newID)
	return newID, err
}

func (r *SpecificationRepository) UpdateSpecification(ctx context.Context, id uint64, spec entities.EquipmentSpecification) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, specs = $2, updated_at = NOW()
		WHERE id = $3
	`, specificationTable)

	result, err := r.storage.Exec(ctx, query, spec.Name, spec.Specs, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SpecificationRepository) DeleteSpecification(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", specificationTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
