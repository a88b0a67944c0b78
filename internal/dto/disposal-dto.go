package dto

type DisposalDTO struct {
	ID            uint64        `json:"id"`
	EquipmentID   uint64        `json:"equipment_id"`
	EquipmentName string        `json:"equipment_name,omitempty"`
	DisposalDate  string        `json:"disposal_date"`
	Reason        string        `json:"reason"`
	Notes         string        `json:"notes,omitempty"`
	OriginalRoom  *ShortRoomDTO `json:"original_room"`
}

type UpdateDisposalDTO struct {
	Notes *string `json:"notes"`
}
