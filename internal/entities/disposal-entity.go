package entities

import "time"

// Disposal - запись об утилизации. Создается ровно один раз: утилизация
// терминальна, повторная попытка отклоняется.
type Disposal struct {
	ID             uint64    `json:"id"`
	EquipmentID    uint64    `json:"equipment_id"`
	DisposalDate   time.Time `json:"disposal_date"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes"`
	OriginalRoomID *uint64   `json:"original_room_id"`
}
