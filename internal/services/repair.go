package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type RepairServiceInterface interface {
	GetRepairs(ctx context.Context, filter types.Filter) ([]dto.RepairDTO, uint64, error)
	FindRepair(ctx context.Context, id uint64) (*dto.RepairDTO, error)
	UpdateRepair(ctx context.Context, id uint64, payload dto.UpdateRepairDTO) (*dto.RepairDTO, error)
}

type RepairService struct {
	pool          *pgxpool.Pool
	repairRepo    repositories.RepairRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	roomRepo      repositories.RoomRepositoryInterface
	logger        *zap.Logger
}

func NewRepairService(
	pool *pgxpool.Pool,
	repairRepo repositories.RepairRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
	logger *zap.Logger,
) RepairServiceInterface {
	return &RepairService{
		pool:          pool,
		repairRepo:    repairRepo,
		equipmentRepo: equipmentRepo,
		roomRepo:      roomRepo,
		logger:        logger,
	}
}

func (s *RepairService) toDTO(ctx context.Context, repair *entities.Repair) *dto.RepairDTO {
	result := &dto.RepairDTO{
		ID:          repair.ID,
		EquipmentID: repair.EquipmentID,
		Status:      repair.Status,
		StartDate:   repair.StartDate.Local().Format("2006-01-02, 15:04:05"),
		EndDate:     utils.PtrTimeToString(repair.EndDate),
		Notes:       repair.Notes,
	}

	if equipment, err := s.equipmentRepo.FindEquipment(ctx, repair.EquipmentID); err == nil {
		result.EquipmentName = equipment.Name
	}
	if repair.OriginalRoomID != nil {
		if room, err := s.roomRepo.FindRoom(ctx, *repair.OriginalRoomID); err == nil {
			result.OriginalRoom = &dto.ShortRoomDTO{ID: room.ID, Number: room.Number, Name: room.Name}
		}
	}

	return result
}

func (s *RepairService) GetRepairs(ctx context.Context, filter types.Filter) ([]dto.RepairDTO, uint64, error) {
	repairs, total, err := s.repairRepo.GetRepairs(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RepairDTO, 0, len(repairs))
	for i := range repairs {
		result = append(result, *s.toDTO(ctx, &repairs[i]))
	}
	return result, total, nil
}

func (s *RepairService) FindRepair(ctx context.Context, id uint64) (*dto.RepairDTO, error) {
	repair, err := s.repairRepo.FindRepair(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, repair), nil
}

// UpdateRepair двигает эпизод по статусу работ. Разрешен только переход
// pending -> in_progress: закрытие эпизода идет через перевод оборудования
// из ремонта, там же проставляется end_date. Закрытую запись менять нельзя.
func (s *RepairService) UpdateRepair(ctx context.Context, id uint64, payload dto.UpdateRepairDTO) (*dto.RepairDTO, error) {
	repair, err := s.repairRepo.FindRepair(ctx, id)
	if err != nil {
		return nil, err
	}

	if constants.IsRepairClosed(repair.Status) {
		return nil, apperrors.ErrAlreadyClosed
	}

	if payload.Status != nil && *payload.Status != repair.Status {
		if repair.Status != constants.RepairPending || *payload.Status != constants.RepairInProgress {
			return nil, apperrors.NewInvalidInputError(
				"недопустимая смена статуса ремонта '%s' -> '%s': завершение оформляется переводом оборудования",
				repair.Status, *payload.Status,
			)
		}
		repair.Status = constants.RepairInProgress
	}
	if payload.Notes != nil {
		repair.Notes = *payload.Notes
	}

	err = repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return s.repairRepo.UpdateRepair(ctx, tx, repair)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("ошибка обновления записи о ремонте", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	return s.toDTO(ctx, repair), nil
}
