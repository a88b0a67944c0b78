package entities

import "time"

// Repair - запись об эпизоде ремонта. На единицу оборудования может быть
// не более одной открытой записи (pending/in_progress); EndDate ставится
// ровно один раз при закрытии.
type Repair struct {
	ID             uint64     `json:"id"`
	EquipmentID    uint64     `json:"equipment_id"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Notes          string     `json:"notes"`
	OriginalRoomID *uint64    `json:"original_room_id"`
}
