package dto

type SpecificationDTO struct {
	ID        uint64                 `json:"id"`
	TypeID    uint64                 `json:"type_id"`
	TypeName  string                 `json:"type_name"`
	Name      string                 `json:"name"`
	Specs     map[string]interface{} `json:"specs"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at"`
}

// CreateSpecificationDTO принимает характеристики в упрощенном виде
// {"Процессор": "Intel i5"}; ключи транслитерируются на стороне сервиса.
type CreateSpecificationDTO struct {
	TypeID uint64                 `json:"type_id" validate:"required"`
	Name   string                 `json:"name" validate:"required,max=255"`
	Specs  map[string]interface{} `json:"specs"`
}

type UpdateSpecificationDTO struct {
	Name  *string                `json:"name" validate:"omitempty,max=255"`
	Specs map[string]interface{} `json:"specs"`
}

// SpecKeyDTO - уникальный ключ характеристики для подсказок при создании
// новой спецификации.
type SpecKeyDTO struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

type SpecKeysDTO struct {
	TypeID   uint64       `json:"type_id"`
	TypeName string       `json:"type_name"`
	Keys     []SpecKeyDTO `json:"keys"`
}
