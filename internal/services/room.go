package services

import (
	"context"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type RoomServiceInterface interface {
	GetRooms(ctx context.Context, filter types.Filter) ([]dto.RoomDTO, uint64, error)
	FindRoom(ctx context.Context, id uint64) (*dto.RoomDTO, error)
}

// RoomService - справочник кабинетов, только чтение. Кабинеты ведутся
// внешней системой организационной структуры.
type RoomService struct {
	roomRepo repositories.RoomRepositoryInterface
}

func NewRoomService(roomRepo repositories.RoomRepositoryInterface) RoomServiceInterface {
	return &RoomService{roomRepo: roomRepo}
}

func roomToDTO(room *entities.Room) *dto.RoomDTO {
	return &dto.RoomDTO{
		ID:        room.ID,
		Number:    room.Number,
		Name:      room.Name,
		IsSpecial: room.IsSpecial,
		CreatedAt: utils.PtrTimeToString(room.CreatedAt),
	}
}

func (s *RoomService) GetRooms(ctx context.Context, filter types.Filter) ([]dto.RoomDTO, uint64, error) {
	rooms, total, err := s.roomRepo.GetRooms(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RoomDTO, 0, len(rooms))
	for i := range rooms {
		result = append(result, *roomToDTO(&rooms[i]))
	}
	return result, total, nil
}

func (s *RoomService) FindRoom(ctx context.Context, id uint64) (*dto.RoomDTO, error) {
	room, err := s.roomRepo.FindRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return roomToDTO(room), nil
}
