package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
)

type DisposalServiceInterface interface {
	GetDisposals(ctx context.Context, filter types.Filter) ([]dto.DisposalDTO, uint64, error)
	FindDisposal(ctx context.Context, id uint64) (*dto.DisposalDTO, error)
	UpdateDisposal(ctx context.Context, id uint64, payload dto.UpdateDisposalDTO) (*dto.DisposalDTO, error)
}

type DisposalService struct {
	disposalRepo  repositories.DisposalRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	roomRepo      repositories.RoomRepositoryInterface
	logger        *zap.Logger
}

func NewDisposalService(
	disposalRepo repositories.DisposalRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
	logger *zap.Logger,
) DisposalServiceInterface {
	return &DisposalService{
		disposalRepo:  disposalRepo,
		equipmentRepo: equipmentRepo,
		roomRepo:      roomRepo,
		logger:        logger,
	}
}

func (s *DisposalService) toDTO(ctx context.Context, disposal *entities.Disposal) *dto.DisposalDTO {
	result := &dto.DisposalDTO{
		ID:           disposal.ID,
		EquipmentID:  disposal.EquipmentID,
		DisposalDate: disposal.DisposalDate.Local().Format("2006-01-02, 15:04:05"),
		Reason:       disposal.Reason,
		Notes:        disposal.Notes,
	}

	if equipment, err := s.equipmentRepo.FindEquipment(ctx, disposal.EquipmentID); err == nil {
		result.EquipmentName = equipment.Name
	}
	if disposal.OriginalRoomID != nil {
		if room, err := s.roomRepo.FindRoom(ctx, *disposal.OriginalRoomID); err == nil {
			result.OriginalRoom = &dto.ShortRoomDTO{ID: room.ID, Number: room.Number, Name: room.Name}
		}
	}

	return result
}

func (s *DisposalService) GetDisposals(ctx context.Context, filter types.Filter) ([]dto.DisposalDTO, uint64, error) {
	disposals, total, err := s.disposalRepo.GetDisposals(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.DisposalDTO, 0, len(disposals))
	for i := range disposals {
		result = append(result, *s.toDTO(ctx, &disposals[i]))
	}
	return result, total, nil
}

func (s *DisposalService) FindDisposal(ctx context.Context, id uint64) (*dto.DisposalDTO, error) {
	disposal, err := s.disposalRepo.FindDisposal(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, disposal), nil
}

// UpdateDisposal меняет только примечания: дата, причина и кабинет
// фиксируются в момент утилизации и неизменяемы.
func (s *DisposalService) UpdateDisposal(ctx context.Context, id uint64, payload dto.UpdateDisposalDTO) (*dto.DisposalDTO, error) {
	if payload.Notes != nil {
		if err := s.disposalRepo.UpdateNotes(ctx, id, *payload.Notes); err != nil {
			return nil, err
		}
	}
	return s.FindDisposal(ctx, id)
}
