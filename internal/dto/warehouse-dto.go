package dto

type WarehouseDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	IsMain      bool   `json:"is_main"`
	UID         string `json:"uid"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateWarehouseDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Address     string `json:"address"`
	Description string `json:"description"`
	IsMain      bool   `json:"is_main"`
}

type UpdateWarehouseDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}
