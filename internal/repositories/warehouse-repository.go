package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	bd "inventory-system/internal/infrastructure/bd"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

var warehouseMap = map[string]string{
	"id":         "w.id",
	"name":       "w.name",
	"is_main":    "w.is_main",
	"created_at": "w.created_at",
	"updated_at": "w.updated_at",
}

type WarehouseRepositoryInterface interface {
	GetWarehouses(ctx context.Context, filter types.Filter) ([]entities.Warehouse, uint64, error)
	FindWarehouse(ctx context.Context, id uint64) (*entities.Warehouse, error)
	GetMain(ctx context.Context) (*entities.Warehouse, error)
	GetMainInTx(ctx context.Context, tx pgx.Tx) (*entities.Warehouse, error)
	CreateWarehouse(ctx context.Context, tx pgx.Tx, warehouse entities.Warehouse) (uint64, error)
	UpdateWarehouse(ctx context.Context, tx pgx.Tx, id uint64, warehouse entities.Warehouse) error
	SetMain(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteWarehouse(ctx context.Context, id uint64) error
}

type WarehouseRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWarehouseRepository(storage *pgxpool.Pool, logger *zap.Logger) WarehouseRepositoryInterface {
	return &WarehouseRepository{storage: storage, logger: logger}
}

func scanWarehouse(row pgx.Row) (*entities.Warehouse, error) {
	var w entities.Warehouse
	var address, description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&w.ID, &w.Name, &address, &description, &w.IsMain, &w.UID,
		&createdAt, &updatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования warehouse: %w", err)
	}

	w.Address = utils.NullStringToString(address)
	w.Description = utils.NullStringToString(description)
	w.CreatedAt = utils.NullTimeToPtr(createdAt)
	w.UpdatedAt = utils.NullTimeToPtr(updatedAt)

	return &w, nil
}

const warehouseColumns = "w.id, w.name, w.address, w.description, w.is_main, w.uid, w.created_at, w.updated_at"

func (r *WarehouseRepository) GetWarehouses(ctx context.Context, filter types.Filter) ([]entities.Warehouse, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"w.name": pat},
				sq.ILike{"w.address": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(w.id)").From("warehouses AS w")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, warehouseMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Warehouse{}, 0, nil
	}

	baseBuilder := psql.Select(warehouseColumns).From("warehouses AS w")
	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("w.is_main DESC", "w.id")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, warehouseMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	warehouses := make([]entities.Warehouse, 0, filter.Limit)
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, err
		}
		warehouses = append(warehouses, *warehouse)
	}

	return warehouses, total, nil
}

func (r *WarehouseRepository) findOne(ctx context.Context, q querier, where string, args ...interface{}) (*entities.Warehouse, error) {
	query := fmt.Sprintf(`SELECT %s FROM warehouses w WHERE %s`, warehouseColumns, where)
	return scanWarehouse(q.QueryRow(ctx, query, args...))
}

func (r *WarehouseRepository) FindWarehouse(ctx context.Context, id uint64) (*entities.Warehouse, error) {
	return r.findOne(ctx, r.storage, "w.id = $1", id)
}

// GetMain возвращает главный склад. apperrors.ErrNotFound означает, что
// главный склад не назначен.
func (r *WarehouseRepository) GetMain(ctx context.Context) (*entities.Warehouse, error) {
	return r.findOne(ctx, r.storage, "w.is_main = TRUE")
}

func (r *WarehouseRepository) GetMainInTx(ctx context.Context, tx pgx.Tx) (*entities.Warehouse, error) {
	return r.findOne(ctx, tx, "w.is_main = TRUE")
}

func (r *WarehouseRepository) CreateWarehouse(ctx context.Context, tx pgx.Tx, warehouse entities.Warehouse) (uint64, error) {
	query := `
		INSERT INTO warehouses (name, address, description, is_main, uid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		warehouse.Name, warehouse.Address, warehouse.Description,
		warehouse.IsMain, warehouse.UID,
	).Scan(&newID)

	return newID, err
}

func (r *WarehouseRepository) UpdateWarehouse(ctx context.Context, tx pgx.Tx, id uint64, warehouse entities.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $1, address = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := tx.Exec(ctx, query, warehouse.Name, warehouse.Address, warehouse.Description, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetMain переназначает главный склад: флаг снимается с предыдущего и
// ставится новому в одной транзакции, частичный уникальный индекс страхует
// от двух главных.
func (r *WarehouseRepository) SetMain(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, err := tx.Exec(ctx, `UPDATE warehouses SET is_main = FALSE, updated_at = NOW() WHERE is_main = TRUE AND id <> $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `UPDATE warehouses SET is_main = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepository) DeleteWarehouse(ctx context.Context, id uint64) error {
	query := `DELETE FROM warehouses WHERE id = $1 AND is_main = FALSE`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
