package entities

import "time"

// MovementHistory - неизменяемая запись о смене кабинета.
// Пишется только машиной состояний; перемещения между складами не историзируются.
type MovementHistory struct {
	ID          uint64    `json:"id"`
	EquipmentID uint64    `json:"equipment_id"`
	FromRoomID  *uint64   `json:"from_room_id"`
	ToRoomID    *uint64   `json:"to_room_id"`
	MovedAt     time.Time `json:"moved_at"`
	Note        string    `json:"note"`
}
