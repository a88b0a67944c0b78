package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const roomTable = "rooms"
const roomFields = "id, number, name, is_special, created_at, updated_at"

type RoomRepositoryInterface interface {
	GetRooms(ctx context.Context, filter types.Filter) ([]entities.Room, uint64, error)
	FindRoom(ctx context.Context, id uint64) (*entities.Room, error)
	CreateRoom(ctx context.Context, room entities.Room) (uint64, error)
}

type RoomRepository struct {
	storage *pgxpool.Pool
}

func NewRoomRepository(storage *pgxpool.Pool) RoomRepositoryInterface {
	return &RoomRepository{storage: storage}
}

func scanRoom(row pgx.Row) (*entities.Room, error) {
	var room entities.Room
	err := row.Scan(&room.ID, &room.Number, &room.Name, &room.IsSpecial, &room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования room: %w", err)
	}
	return &room, nil
}

func (r *RoomRepository) GetRooms(ctx context.Context, filter types.Filter) ([]entities.Room, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(id) FROM %s", roomTable)).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY number", roomFields, roomTable)
	args := []interface{}{}
	if filter.Search != "" {
		query = fmt.Sprintf("SELECT %s FROM %s WHERE number ILIKE $1 OR name ILIKE $1 ORDER BY number", roomFields, roomTable)
		args = append(args, "%"+filter.Search+"%")
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rooms := make([]entities.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, *room)
	}

	return rooms, total, rows.Err()
}

func (r *RoomRepository) FindRoom(ctx context.Context, id uint64) (*entities.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", roomFields, roomTable)
	return scanRoom(r.storage.QueryRow(ctx, query, id))
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room entities.Room) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (number, name, is_special, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, roomTable)

	var newID uint64
	err := r.storage.QueryRow(ctx, query, room.Number, room.Name, room.IsSpecial).Scan(&newID)
	return newID, err
}
