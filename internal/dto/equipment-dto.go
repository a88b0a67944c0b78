package dto

import "github.com/aarondl/null/v8"

type ShortRoomDTO struct {
	ID     uint64 `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type ShortWarehouseDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	IsMain bool   `json:"is_main"`
}

type ShortEquipmentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type EquipmentDTO struct {
	ID          uint64                 `json:"id"`
	Type        ShortEquipmentTypeDTO  `json:"type"`
	Room        *ShortRoomDTO          `json:"room"`
	Warehouse   *ShortWarehouseDTO     `json:"warehouse"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Inn         string                 `json:"inn"`
	UID         string                 `json:"uid"`
	Specs       map[string]interface{} `json:"specs"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

// CreateEquipmentDTO - приемка единицы оборудования. Room и Warehouse
// намеренно отсутствуют: новое оборудование всегда попадает на главный склад.
type CreateEquipmentDTO struct {
	TypeID          uint64      `json:"type_id" validate:"required"`
	SpecificationID null.Uint64 `json:"specification_id"`
	Name            string      `json:"name" validate:"required,max=255"`
	Description     string      `json:"description"`
	Inn             string      `json:"inn" validate:"omitempty,max=100,inn_format"`
}

// UpdateEquipmentDTO - обновление карточки. Статус сюда не входит:
// смена статуса идет только через переход.
type UpdateEquipmentDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Inn         *string `json:"inn" validate:"omitempty,max=100,inn_format"`
}

// TransitionEquipmentDTO - запрос на переход статуса.
// RoomID и WarehouseID - подсказки размещения; одновременно указывать нельзя.
// При возврате на склад склад не принимается: оборудование идет на главный.
type TransitionEquipmentDTO struct {
	Status      string      `json:"status" validate:"required,equipment_status"`
	RoomID      null.Uint64 `json:"room_id"`
	WarehouseID null.Uint64 `json:"warehouse_id"`
}

// BulkCreateEquipmentDTO - массовое создание. Все единицы попадают на главный
// склад и получают один снимок характеристик из выбранной спецификации.
type BulkCreateEquipmentDTO struct {
	TypeID          uint64      `json:"type_id" validate:"required"`
	SpecificationID null.Uint64 `json:"specification_id"`
	Name            string      `json:"name" validate:"required,max=255"`
	Count           int         `json:"count" validate:"required,min=1,max=100"`
	Inns            []string    `json:"inns" validate:"omitempty,dive,max=100,inn_format"`
}

type EquipmentInnPairDTO struct {
	ID  uint64 `json:"id" validate:"required"`
	Inn string `json:"inn" validate:"required,max=100,inn_format"`
}

type BulkEquipmentInnUpdateDTO struct {
	EquipmentInns []EquipmentInnPairDTO `json:"equipment_inns" validate:"required,min=1,dive"`
}
