package dto

type RepairDTO struct {
	ID            uint64        `json:"id"`
	EquipmentID   uint64        `json:"equipment_id"`
	EquipmentName string        `json:"equipment_name,omitempty"`
	Status        string        `json:"status"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	OriginalRoom  *ShortRoomDTO `json:"original_room"`
}

// UpdateRepairDTO - движение по статусу работ (pending -> in_progress и
// закрытие). EndDate и OriginalRoom клиент менять не может.
type UpdateRepairDTO struct {
	Status *string `json:"status" validate:"omitempty,repair_status"`
	Notes  *string `json:"notes"`
}
