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

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	bd "inventory-system/internal/infrastructure/bd"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

// ЕДИНАЯ КАРТА ПОЛЕЙ (Фильтр + Сортировка)
var equipmentMap = map[string]string{
	"id":           "e.id",
	"name":         "e.name",
	"status":       "e.status",
	"type_id":      "e.type_id",
	"room_id":      "e.room_id",
	"warehouse_id": "e.warehouse_id",
	"inn":          "e.inn",
	"is_active":    "e.is_active",
	"created_at":   "e.created_at",
	"updated_at":   "e.updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	FindByInnOrUID(ctx context.Context, code string) (*dto.EquipmentDTO, error)
	FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateEquipmentDTO) error
	UpdateState(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	UpdateInn(ctx context.Context, tx pgx.Tx, id uint64, inn string) error
	ExistingInns(ctx context.Context, inns []string) ([]string, error)
	InnsTakenByOthers(ctx context.Context, pairs []dto.EquipmentInnPairDTO) ([]string, error)
	DeactivateEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

const equipmentJoinedColumns = `
	e.id, e.name, e.description, e.status, e.inn, e.uid, e.specs, e.is_active,
	e.created_at, e.updated_at,
	COALESCE(t.id, 0), COALESCE(t.name, ''),
	r.id, r.number, r.name,
	w.id, w.name, w.is_main`

func scanEquipmentDTO(row pgx.Row) (*dto.EquipmentDTO, error) {
	var e dto.EquipmentDTO
	var t dto.ShortEquipmentTypeDTO

	var createdAt, updatedAt sql.NullTime
	var roomID sql.NullInt64
	var roomNumber, roomName sql.NullString
	var warehouseID sql.NullInt64
	var warehouseName sql.NullString
	var warehouseIsMain sql.NullBool

	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Status, &e.Inn, &e.UID, &e.Specs, &e.IsActive,
		&createdAt, &updatedAt,
		&t.ID, &t.Name,
		&roomID, &roomNumber, &roomName,
		&warehouseID, &warehouseName, &warehouseIsMain,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}

	e.Type = t
	if roomID.Valid {
		e.Room = &dto.ShortRoomDTO{
			ID:     uint64(roomID.Int64),
			Number: roomNumber.String,
			Name:   roomName.String,
		}
	}
	if warehouseID.Valid {
		e.Warehouse = &dto.ShortWarehouseDTO{
			ID:     uint64(warehouseID.Int64),
			Name:   warehouseName.String,
			IsMain: warehouseIsMain.Bool,
		}
	}
	e.CreatedAt = utils.NullTimeToEmptyString(createdAt)
	e.UpdatedAt = utils.NullTimeToEmptyString(updatedAt)

	return &e, nil
}

// -----------------------------------------------------------
// GET (Список)
// -----------------------------------------------------------

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"e.name": pat},
				sq.ILike{"e.inn": pat},
				sq.ILike{"e.description": pat},
			})
		}
		return b
	}

	// Неактивное оборудование скрыто, если его не запросили явно.
	applyActive := func(b sq.SelectBuilder) sq.SelectBuilder {
		if _, ok := filter.Filter["is_active"]; !ok {
			return b.Where(sq.Eq{"e.is_active": true})
		}
		return b
	}

	// 1. COUNT
	countBuilder := psql.Select("COUNT(e.id)").From("equipments AS e")
	countBuilder = applySearch(countBuilder)
	countBuilder = applyActive(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder = bd.ApplyListParams(countBuilder, countFilter, equipmentMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.EquipmentDTO{}, 0, nil
	}

	// 2. SELECT
	baseBuilder := psql.Select(equipmentJoinedColumns).
		From("equipments AS e").
		LeftJoin("equipment_types t ON e.type_id = t.id").
		LeftJoin("rooms r ON e.room_id = r.id").
		LeftJoin("warehouses w ON e.warehouse_id = w.id")

	baseBuilder = applySearch(baseBuilder)
	baseBuilder = applyActive(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.id DESC")
	}

	baseBuilder = bd.ApplyListParams(baseBuilder, filter, equipmentMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipments := make([]dto.EquipmentDTO, 0, filter.Limit)
	for rows.Next() {
		equipment, err := scanEquipmentDTO(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *equipment)
	}

	return equipments, total, nil
}

// -----------------------------------------------------------
// FIND ONE
// -----------------------------------------------------------

func (r *EquipmentRepository) findOne(ctx context.Context, q querier, where string, args ...interface{}) (*dto.EquipmentDTO, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM equipments e
			LEFT JOIN equipment_types t ON e.type_id = t.id
			LEFT JOIN rooms r ON e.room_id = r.id
			LEFT JOIN warehouses w ON e.warehouse_id = w.id
		WHERE %s
	`, equipmentJoinedColumns, where)

	return scanEquipmentDTO(q.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return r.findOne(ctx, r.storage, "e.id = $1", id)
}

// FindByInnOrUID ищет единицу для сканирования: сначала по инвентарному
// номеру, затем по uid.
func (r *EquipmentRepository) FindByInnOrUID(ctx context.Context, code string) (*dto.EquipmentDTO, error) {
	equipment, err := r.findOne(ctx, r.storage, "e.inn = $1 AND e.inn <> ''", code)
	if err == nil {
		return equipment, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return r.findOne(ctx, r.storage, "e.uid = $1", code)
}

// FindEquipmentForUpdate читает строку с блокировкой FOR UPDATE: все
// конкурентные переходы по одной единице сериализуются на этой строке.
func (r *EquipmentRepository) FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query := `
		SELECT id, type_id, room_id, warehouse_id, name, description, status, inn, uid, specs, is_active, created_at, updated_at
		FROM equipments
		WHERE id = $1
		FOR UPDATE
	`

	var e entities.Equipment
	var roomID, warehouseID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := tx.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.TypeID, &roomID, &warehouseID, &e.Name, &e.Description,
		&e.Status, &e.Inn, &e.UID, &e.Specs, &e.IsActive,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения equipment для блокировки: %w", err)
	}

	e.RoomID = utils.NullInt64ToUint64Ptr(roomID)
	e.WarehouseID = utils.NullInt64ToUint64Ptr(warehouseID)
	e.CreatedAt = utils.NullTimeToPtr(createdAt)
	e.UpdatedAt = utils.NullTimeToPtr(updatedAt)

	return &e, nil
}

// -----------------------------------------------------------
// CRUD
// -----------------------------------------------------------

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipments (type_id, room_id, warehouse_id, name, description, status, inn, uid, specs, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := tx.QueryRow(ctx, query,
		equipment.TypeID, equipment.RoomID, equipment.WarehouseID,
		equipment.Name, equipment.Description, equipment.Status,
		equipment.Inn, equipment.UID, equipment.Specs, equipment.IsActive,
	).Scan(&newID)

	return newID, err
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, id uint64, payload dto.UpdateEquipmentDTO) error {
	query := `
		UPDATE equipments
		SET name        = COALESCE($1, name),
		    description = COALESCE($2, description),
		    inn         = COALESCE($3, inn),
		    updated_at  = NOW()
		WHERE id = $4
	`
	result, err := tx.Exec(ctx, query, payload.Name, payload.Description, payload.Inn, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateState записывает результат перехода: статус и размещение меняются
// только вместе, в той же транзакции, где строка была заблокирована.
func (r *EquipmentRepository) UpdateState(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	query := `
		UPDATE equipments
		SET status = $1, room_id = $2, warehouse_id = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := tx.Exec(ctx, query,
		equipment.Status, equipment.RoomID, equipment.WarehouseID, equipment.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateInn(ctx context.Context, tx pgx.Tx, id uint64, inn string) error {
	query := `UPDATE equipments SET inn = $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.Exec(ctx, query, inn, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ExistingInns возвращает те из переданных инвентарных номеров, которые уже
// заняты.
func (r *EquipmentRepository) ExistingInns(ctx context.Context, inns []string) ([]string, error) {
	if len(inns) == 0 {
		return nil, nil
	}

	query := `SELECT inn FROM equipments WHERE inn = ANY($1) AND inn <> ''`
	rows, err := r.storage.Query(ctx, query, inns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var inn string
		if err := rows.Scan(&inn); err != nil {
			return nil, err
		}
		taken = append(taken, inn)
	}
	return taken, rows.Err()
}

// InnsTakenByOthers проверяет номера перед массовым обновлением: номер
// считается занятым, если он числится за единицей вне списка pairs.
func (r *EquipmentRepository) InnsTakenByOthers(ctx context.Context, pairs []dto.EquipmentInnPairDTO) ([]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	inns := make([]string, 0, len(pairs))
	ids := make([]uint64, 0, len(pairs))
	for _, p := range pairs {
		inns = append(inns, p.Inn)
		ids = append(ids, p.ID)
	}

	query := `SELECT inn FROM equipments WHERE inn = ANY($1) AND inn <> '' AND NOT (id = ANY($2))`
	rows, err := r.storage.Query(ctx, query, inns, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var inn string
		if err := rows.Scan(&inn); err != nil {
			return nil, err
		}
		taken = append(taken, inn)
	}
	return taken, rows.Err()
}

func (r *EquipmentRepository) DeactivateEquipment(ctx context.Context, id uint64) error {
	query := `UPDATE equipments SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
