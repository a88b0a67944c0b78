package services

import (
	"context"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
)

type MovementServiceInterface interface {
	GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementHistoryDTO, uint64, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MovementHistoryDTO, error)
}

// MovementService читает историю перемещений. Записи создает только машина
// состояний, поэтому здесь нет операций записи.
type MovementService struct {
	movementRepo  repositories.MovementRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	roomRepo      repositories.RoomRepositoryInterface
}

func NewMovementService(
	movementRepo repositories.MovementRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
) MovementServiceInterface {
	return &MovementService{
		movementRepo:  movementRepo,
		equipmentRepo: equipmentRepo,
		roomRepo:      roomRepo,
	}
}

func (s *MovementService) roomName(ctx context.Context, roomID *uint64) string {
	if roomID == nil {
		return ""
	}
	room, err := s.roomRepo.FindRoom(ctx, *roomID)
	if err != nil {
		return ""
	}
	return room.Number
}

func (s *MovementService) toDTO(ctx context.Context, movement *entities.MovementHistory) dto.MovementHistoryDTO {
	result := dto.MovementHistoryDTO{
		ID:           movement.ID,
		EquipmentID:  movement.EquipmentID,
		FromRoomID:   movement.FromRoomID,
		FromRoomName: s.roomName(ctx, movement.FromRoomID),
		ToRoomID:     movement.ToRoomID,
		ToRoomName:   s.roomName(ctx, movement.ToRoomID),
		MovedAt:      movement.MovedAt.Local().Format("2006-01-02, 15:04:05"),
		Note:         movement.Note,
	}

	if equipment, err := s.equipmentRepo.FindEquipment(ctx, movement.EquipmentID); err == nil {
		result.EquipmentName = equipment.Name
	}

	return result
}

func (s *MovementService) GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementHistoryDTO, uint64, error) {
	movements, total, err := s.movementRepo.GetMovements(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.MovementHistoryDTO, 0, len(movements))
	for i := range movements {
		result = append(result, s.toDTO(ctx, &movements[i]))
	}
	return result, total, nil
}

func (s *MovementService) GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MovementHistoryDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.GetByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MovementHistoryDTO, 0, len(movements))
	for i := range movements {
		result = append(result, s.toDTO(ctx, &movements[i]))
	}
	return result, nil
}
