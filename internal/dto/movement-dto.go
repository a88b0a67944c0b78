package dto

type MovementHistoryDTO struct {
	ID            uint64  `json:"id"`
	EquipmentID   uint64  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name,omitempty"`
	FromRoomID    *uint64 `json:"from_room_id"`
	FromRoomName  string  `json:"from_room_name,omitempty"`
	ToRoomID      *uint64 `json:"to_room_id"`
	ToRoomName    string  `json:"to_room_name,omitempty"`
	MovedAt       string  `json:"moved_at"`
	Note          string  `json:"note,omitempty"`
}
