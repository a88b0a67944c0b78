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

var disposalMap = map[string]string{
	"id":            "d.id",
	"equipment_id":  "d.equipment_id",
	"disposal_date": "d.disposal_date",
	"reason":        "d.reason",
}

type DisposalRepositoryInterface interface {
	GetDisposals(ctx context.Context, filter types.Filter) ([]entities.Disposal, uint64, error)
	FindDisposal(ctx context.Context, id uint64) (*entities.Disposal, error)
	FindByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Disposal, error)
	CreateDisposal(ctx context.Context, tx pgx.Tx, disposal entities.Disposal) (uint64, error)
	UpdateNotes(ctx context.Context, id uint64, notes string) error
}

type DisposalRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDisposalRepository(storage *pgxpool.Pool, logger *zap.Logger) DisposalRepositoryInterface {
	return &DisposalRepository{storage: storage, logger: logger}
}

const disposalColumns = "d.id, d.equipment_id, d.disposal_date, d.reason, d.notes, d.original_room_id"

func scanDisposal(row pgx.Row) (*entities.Disposal, error) {
	var d entities.Disposal
	var originalRoomID sql.NullInt64

	err := row.Scan(
		&d.ID, &d.EquipmentID, &d.DisposalDate, &d.Reason, &d.Notes, &originalRoomID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования disposal: %w", err)
	}

	d.OriginalRoomID = utils.NullInt64ToUint64Ptr(originalRoomID)

	return &d, nil
}

func (r *DisposalRepository) GetDisposals(ctx context.Context, filter types.Filter) ([]entities.Disposal, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(d.id)").From("disposals AS d")

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, disposalMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Disposal{}, 0, nil
	}

	baseBuilder := psql.Select(disposalColumns).From("disposals AS d")
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("d.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, disposalMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	disposals := make([]entities.Disposal, 0, filter.Limit)
	for rows.Next() {
		disposal, err := scanDisposal(rows)
		if err != nil {
			return nil, 0, err
		}
		disposals = append(disposals, *disposal)
	}

	return disposals, total, nil
}

func (r *DisposalRepository) findOne(ctx context.Context, q querier, where string, args ...interface{}) (*entities.Disposal, error) {
	query := fmt.Sprintf(`SELECT %s FROM disposals d WHERE %s`, disposalColumns, where)
	return scanDisposal(q.QueryRow(ctx, query, args...))
}

func (r *DisposalRepository) FindDisposal(ctx context.Context, id uint64) (*entities.Disposal, error) {
	return r.findOne(ctx, r.storage, "d.id = $1", id)
}

// FindByEquipmentInTx читает акт по оборудованию внутри транзакции перехода,
// чтобы проверка существования видела незакоммиченные изменения.
func (r *DisposalRepository) FindByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Disposal, error) {
	return r.findOne(ctx, tx, "d.equipment_id = $1", equipmentID)
}

// CreateDisposal создает акт утилизации. UNIQUE(equipment_id) защищает от
// повторной утилизации на уровне БД.
func (r *DisposalRepository) CreateDisposal(ctx context.Context, tx pgx.Tx, disposal entities.Disposal) (uint64, error) {
	query := `
		INSERT INTO disposals (equipment_id, disposal_date, reason, notes, original_room_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		disposal.EquipmentID, disposal.DisposalDate, disposal.Reason,
		disposal.Notes, disposal.OriginalRoomID,
	).Scan(&newID)

	return newID, err
}

func (r *DisposalRepository) UpdateNotes(ctx context.Context, id uint64, notes string) error {
	query := `UPDATE disposals SET notes = $1 WHERE id = $2`
	result, err := r.storage.Exec(ctx, query, notes, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
