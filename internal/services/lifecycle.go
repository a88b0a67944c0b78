package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

// allowedTransitions - единственный источник правды о легальности переходов.
// Отсутствие пары (from, to) означает TransitionError; disposed терминален.
var allowedTransitions = map[string]map[string]bool{
	constants.StatusInStock: {
		constants.StatusInUse:    true,
		constants.StatusDisposed: true,
	},
	constants.StatusInUse: {
		constants.StatusInStock:  true,
		constants.StatusInRepair: true,
		constants.StatusDisposed: true,
	},
	constants.StatusInRepair: {
		constants.StatusInUse:    true,
		constants.StatusInStock:  true,
		constants.StatusDisposed: true,
	},
	constants.StatusDisposed: {},
}

type LifecycleServiceInterface interface {
	RequestTransition(ctx context.Context, equipmentID uint64, payload dto.TransitionEquipmentDTO) (*dto.EquipmentDTO, error)
	ForceInUse(ctx context.Context, equipmentID uint64, roomID *uint64) (*dto.EquipmentDTO, error)
}

// LifecycleService - машина состояний оборудования. Весь переход (статус,
// размещение, записи о ремонте/утилизации, история перемещений) применяется
// одной транзакцией под блокировкой строки оборудования.
type LifecycleService struct {
	pool          *pgxpool.Pool
	equipmentRepo repositories.EquipmentRepositoryInterface
	warehouseRepo repositories.WarehouseRepositoryInterface
	repairRepo    repositories.RepairRepositoryInterface
	disposalRepo  repositories.DisposalRepositoryInterface
	movementRepo  repositories.MovementRepositoryInterface
	logger        *zap.Logger
}

func NewLifecycleService(
	pool *pgxpool.Pool,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	warehouseRepo repositories.WarehouseRepositoryInterface,
	repairRepo repositories.RepairRepositoryInterface,
	disposalRepo repositories.DisposalRepositoryInterface,
	movementRepo repositories.MovementRepositoryInterface,
	logger *zap.Logger,
) LifecycleServiceInterface {
	return &LifecycleService{
		pool:          pool,
		equipmentRepo: equipmentRepo,
		warehouseRepo: warehouseRepo,
		repairRepo:    repairRepo,
		disposalRepo:  disposalRepo,
		movementRepo:  movementRepo,
		logger:        logger,
	}
}

// RequestTransition переводит единицу оборудования в целевой статус.
// Повторный запрос того же статуса - no-op: оборудование возвращается
// без изменений, без новых записей в журналах.
func (s *LifecycleService) RequestTransition(ctx context.Context, equipmentID uint64, payload dto.TransitionEquipmentDTO) (*dto.EquipmentDTO, error) {
	if !constants.IsEquipmentStatus(payload.Status) {
		return nil, apperrors.NewInvalidInputError("неизвестный статус '%s'", payload.Status)
	}

	hint := LocationHint{}
	if payload.RoomID.Valid {
		hint.RoomID = &payload.RoomID.Uint64
	}
	if payload.WarehouseID.Valid {
		hint.WarehouseID = &payload.WarehouseID.Uint64
	}

	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindEquipmentForUpdate(ctx, tx, equipmentID)
		if err != nil {
			return err
		}

		if equipment.Status == payload.Status {
			return nil
		}

		if !allowedTransitions[equipment.Status][payload.Status] {
			return apperrors.NewTransitionError(equipment.Status, payload.Status)
		}

		return s.applyTransition(ctx, tx, equipment, payload.Status, hint)
	})
	if err != nil {
		return nil, err
	}

	return s.equipmentRepo.FindEquipment(ctx, equipmentID)
}

// ForceInUse - административный перевод в эксплуатацию из любого статуса,
// минуя таблицу переходов. Используется при миграции данных; доступ
// ограничивается на границе HTTP.
func (s *LifecycleService) ForceInUse(ctx context.Context, equipmentID uint64, roomID *uint64) (*dto.EquipmentDTO, error) {
	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindEquipmentForUpdate(ctx, tx, equipmentID)
		if err != nil {
			return err
		}

		oldRoomID := equipment.RoomID

		equipment.Status = constants.StatusInUse
		if roomID != nil {
			equipment.RoomID = roomID
			equipment.WarehouseID = nil
		}

		s.logger.Warn("принудительный перевод в эксплуатацию",
			zap.Uint64("equipment_id", equipmentID),
			zap.Uint64p("room_id", roomID),
		)

		if err := s.equipmentRepo.UpdateState(ctx, tx, equipment); err != nil {
			return err
		}
		return s.recordMovement(ctx, tx, equipment.ID, oldRoomID, equipment.RoomID, "принудительный перевод в эксплуатацию")
	})
	if err != nil {
		return nil, err
	}

	return s.equipmentRepo.FindEquipment(ctx, equipmentID)
}

// applyTransition применяет легальный переход: вычисляет размещение,
// проводит журналы и пишет историю перемещений. Вызывается только под
// блокировкой строки.
func (s *LifecycleService) applyTransition(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment, targetStatus string, hint LocationHint) error {
	oldStatus := equipment.Status
	oldRoomID := equipment.RoomID

	openRepair, err := s.findOpenRepair(ctx, tx, equipment.ID)
	if err != nil {
		return err
	}

	var repairOriginalRoomID *uint64
	if openRepair != nil {
		repairOriginalRoomID = openRepair.OriginalRoomID
	}

	mainWarehouse := func(ctx context.Context) (uint64, error) {
		main, err := s.warehouseRepo.GetMainInTx(ctx, tx)
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.ErrNoMainWarehouse
		}
		if err != nil {
			return 0, err
		}
		return main.ID, nil
	}

	placement, err := ResolvePlacement(ctx, oldStatus, targetStatus, repairOriginalRoomID, hint, mainWarehouse)
	if err != nil {
		return err
	}

	switch targetStatus {
	case constants.StatusInRepair:
		// Новый эпизод открывается, только если нет открытого.
		if openRepair == nil {
			_, err := s.repairRepo.CreateRepair(ctx, tx, entities.Repair{
				EquipmentID:    equipment.ID,
				Status:         constants.RepairPending,
				StartDate:      time.Now(),
				OriginalRoomID: oldRoomID,
			})
			if err != nil {
				return fmt.Errorf("не удалось открыть запись о ремонте: %w", err)
			}
		}

	case constants.StatusInUse, constants.StatusInStock:
		if oldStatus == constants.StatusInRepair {
			if err := s.closeRepairIfInProgress(ctx, tx, openRepair, constants.RepairCompleted); err != nil {
				return err
			}
		}

	case constants.StatusDisposed:
		reason := constants.DisposalReasonDefault
		if oldStatus == constants.StatusInRepair {
			reason = constants.DisposalReasonFailedRepair
			if err := s.closeRepairIfInProgress(ctx, tx, openRepair, constants.RepairFailed); err != nil {
				return err
			}
		}
		if err := s.openDisposal(ctx, tx, equipment, reason); err != nil {
			return err
		}
	}

	equipment.Status = targetStatus
	equipment.RoomID = placement.RoomID
	equipment.WarehouseID = placement.WarehouseID

	if err := s.equipmentRepo.UpdateState(ctx, tx, equipment); err != nil {
		return err
	}

	s.logger.Info("переход статуса оборудования",
		zap.Uint64("equipment_id", equipment.ID),
		zap.String("from", oldStatus),
		zap.String("to", targetStatus),
	)

	note := fmt.Sprintf("смена статуса: %s -> %s", oldStatus, targetStatus)
	return s.recordMovement(ctx, tx, equipment.ID, oldRoomID, placement.RoomID, note)
}

func (s *LifecycleService) findOpenRepair(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Repair, error) {
	openRepair, err := s.repairRepo.FindOpenByEquipment(ctx, tx, equipmentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return openRepair, nil
}

// closeRepairIfInProgress закрывает эпизод ремонта с нужным исходом.
// Запись в pending не трогается: работы так и не начались, эпизод остается
// открытым для повторного входа в ремонт. Закрытие best-effort: отсутствие
// записи не считается ошибкой.
func (s *LifecycleService) closeRepairIfInProgress(ctx context.Context, tx pgx.Tx, openRepair *entities.Repair, outcome string) error {
	if openRepair == nil || openRepair.Status != constants.RepairInProgress {
		return nil
	}

	err := s.repairRepo.CloseRepair(ctx, tx, openRepair.ID, outcome, time.Now())
	if errors.Is(err, apperrors.ErrAlreadyClosed) {
		return nil
	}
	return err
}

// openDisposal создает акт утилизации, если его еще нет. Существующий акт
// переиспользуется: переход завершается без новой записи, чтобы оборудование,
// возвращенное из disposed принудительным переводом, можно было утилизировать
// повторно.
func (s *LifecycleService) openDisposal(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment, reason string) error {
	existing, err := s.disposalRepo.FindByEquipmentInTx(ctx, tx, equipment.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if existing != nil {
		s.logger.Info("акт утилизации уже существует, новый не создается",
			zap.Uint64("equipment_id", equipment.ID),
			zap.Uint64("disposal_id", existing.ID),
		)
		return nil
	}

	_, err = s.disposalRepo.CreateDisposal(ctx, tx, entities.Disposal{
		EquipmentID:    equipment.ID,
		DisposalDate:   time.Now(),
		Reason:         reason,
		OriginalRoomID: equipment.RoomID,
	})
	if err != nil {
		return fmt.Errorf("не удалось создать акт утилизации: %w", err)
	}
	return nil
}

// recordMovement пишет историю только при фактической смене кабинета,
// включая выдачу из склада (nil -> room) и возврат (room -> nil).
// Перемещения между складами не историзируются.
func (s *LifecycleService) recordMovement(ctx context.Context, tx pgx.Tx, equipmentID uint64, fromRoomID, toRoomID *uint64, note string) error {
	if !utils.DiffPtr(fromRoomID, toRoomID) {
		return nil
	}

	_, err := s.movementRepo.CreateMovement(ctx, tx, entities.MovementHistory{
		EquipmentID: equipmentID,
		FromRoomID:  fromRoomID,
		ToRoomID:    toRoomID,
		MovedAt:     time.Now(),
		Note:        note,
	})
	return err
}
