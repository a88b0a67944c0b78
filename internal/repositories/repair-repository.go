package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

var repairMap = map[string]string{
	"id":           "rp.id",
	"equipment_id": "rp.equipment_id",
	"status":       "rp.status",
	"start_date":   "rp.start_date",
	"end_date":     "rp.end_date",
}

type RepairRepositoryInterface interface {
	GetRepairs(ctx context.Context, filter types.Filter) ([]entities.Repair, uint64, error)
	FindRepair(ctx context.Context, id uint64) (*entities.Repair, error)
	FindOpenByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Repair, error)
	CreateRepair(ctx context.Context, tx pgx.Tx, repair entities.Repair) (uint64, error)
	CloseRepair(ctx context.Context, tx pgx.Tx, id uint64, status string, endDate time.Time) error
	UpdateRepair(ctx context.Context, tx pgx.Tx, repair *entities.Repair) error
}

type RepairRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRepairRepository(storage *pgxpool.Pool, logger *zap.Logger) RepairRepositoryInterface {
	return &RepairRepository{storage: storage, logger: logger}
}

const repairColumns = "rp.id, rp.equipment_id, rp.status, rp.start_date, rp.end_date, rp.notes, rp.original_room_id"

func scanRepair(row pgx.Row) (*entities.Repair, error) {
	var rp entities.Repair
	var endDate sql.NullTime
	var originalRoomID sql.NullInt64

	err := row.Scan(
		&rp.ID, &rp.EquipmentID, &rp.Status, &rp.StartDate,
		&endDate, &rp.Notes, &originalRoomID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования repair: %w", err)
	}

	rp.EndDate = utils.NullTimeToPtr(endDate)
	rp.OriginalRoomID = utils.NullInt64ToUint64Ptr(originalRoomID)

	return &rp, nil
}

func (r *RepairRepository) GetRepairs(ctx context.Context, filter types.Filter) ([]entities.Repair, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(rp.id)").From("repairs AS rp")

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, repairMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Repair{}, 0, nil
	}

	baseBuilder := psql.Select(repairColumns).From("repairs AS rp")
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("rp.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, repairMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	repairs := make([]entities.Repair, 0, filter.Limit)
	for rows.Next() {
		repair, err := scanRepair(rows)
		if err != nil {
			return nil, 0, err
		}
		repairs = append(repairs, *repair)
	}

	return repairs, total, nil
}

func (r *RepairRepository) findOne(ctx context.Context, q querier, where string, args ...interface{}) (*entities.Repair, error) {
	query := fmt.Sprintf(`SELECT %s FROM repairs rp WHERE %s`, repairColumns, where)
	return scanRepair(q.QueryRow(ctx, query, args...))
}

func (r *RepairRepository) FindRepair(ctx context.Context, id uint64) (*entities.Repair, error) {
	return r.findOne(ctx, r.storage, "rp.id = $1", id)
}

// FindOpenByEquipment ищет незакрытый эпизод ремонта. Частичный уникальный
// индекс гарантирует, что такой эпизод не более одного.
func (r *RepairRepository) FindOpenByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Repair, error) {
	return r.findOne(ctx, tx, "rp.equipment_id = $1 AND rp.status IN ('pending', 'in_progress')", equipmentID)
}

func (r *RepairRepository) CreateRepair(ctx context.Context, tx pgx.Tx, repair entities.Repair) (uint64, error) {
	query := `
		INSERT INTO repairs (equipment_id, status, start_date, notes, original_room_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		repair.EquipmentID, repair.Status, repair.StartDate,
		repair.Notes, repair.OriginalRoomID,
	).Scan(&newID)

	return newID, err
}

// CloseRepair ставит терминальный статус и дату окончания. Уже закрытую
// запись не трогает.
func (r *RepairRepository) CloseRepair(ctx context.Context, tx pgx.Tx, id uint64, status string, endDate time.Time) error {
	query := `
		UPDATE repairs
		SET status = $1, end_date = $2
		WHERE id = $3 AND end_date IS NULL
	`
	result, err := tx.Exec(ctx, query, status, endDate, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAlreadyClosed
	}
	return nil
}

func (r *RepairRepository) UpdateRepair(ctx context.Context, tx pgx.Tx, repair *entities.Repair) error {
	query := `
		UPDATE repairs
		SET status = $1, end_date = $2, notes = $3
		WHERE id = $4
	`
	result, err := tx.Exec(ctx, query, repair.Status, repair.EndDate, repair.Notes, repair.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
