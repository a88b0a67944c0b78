package dto

type EquipmentTypeDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateEquipmentTypeDTO struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateEquipmentTypeDTO struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}
