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

var movementMap = map[string]string{
	"id":           "m.id",
	"equipment_id": "m.equipment_id",
	"moved_at":     "m.moved_at",
}

type MovementRepositoryInterface interface {
	GetMovements(ctx context.Context, filter types.Filter) ([]entities.MovementHistory, uint64, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.MovementHistory, error)
	CreateMovement(ctx context.Context, tx pgx.Tx, movement entities.MovementHistory) (uint64, error)
}

type MovementRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMovementRepository(storage *pgxpool.Pool, logger *zap.Logger) MovementRepositoryInterface {
	return &MovementRepository{storage: storage, logger: logger}
}

const movementColumns = "m.id, m.equipment_id, m.from_room_id, m.to_room_id, m.moved_at, m.note"

func scanMovement(row pgx.Row) (*entities.MovementHistory, error) {
	var m entities.MovementHistory
	var fromRoomID, toRoomID sql.NullInt64

	err := row.Scan(&m.ID, &m.EquipmentID, &fromRoomID, &toRoomID, &m.MovedAt, &m.Note)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования movement: %w", err)
	}

	m.FromRoomID = utils.NullInt64ToUint64Ptr(fromRoomID)
	m.ToRoomID = utils.NullInt64ToUint64Ptr(toRoomID)

	return &m, nil
}

func (r *MovementRepository) GetMovements(ctx context.Context, filter types.Filter) ([]entities.MovementHistory, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(m.id)").From("movement_history AS m")

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, movementMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.MovementHistory{}, 0, nil
	}

	baseBuilder := psql.Select(movementColumns).From("movement_history AS m")
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("m.moved_at DESC", "m.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, movementMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	movements := make([]entities.MovementHistory, 0, filter.Limit)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, 0, err
		}
		movements = append(movements, *movement)
	}

	return movements, total, nil
}

func (r *MovementRepository) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.MovementHistory, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM movement_history m
		WHERE m.equipment_id = $1
		ORDER BY m.moved_at DESC, m.id DESC
	`, movementColumns)

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]entities.MovementHistory, 0)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)
	}

	return movements, rows.Err()
}

func (r *MovementRepository) CreateMovement(ctx context.Context, tx pgx.Tx, movement entities.MovementHistory) (uint64, error) {
	query := `
		INSERT INTO movement_history (equipment_id, from_room_id, to_room_id, moved_at, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		movement.EquipmentID, movement.FromRoomID, movement.ToRoomID,
		movement.MovedAt, movement.Note,
	).Scan(&newID)

	return newID, err
}
