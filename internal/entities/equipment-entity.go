package entities

import (
	"inventory-system/pkg/types"
)

// Equipment - единица оборудования, корневой агрегат жизненного цикла.
// Размещение (room_id XOR warehouse_id) полностью определяется статусом.
type Equipment struct {
	ID          uint64                 `json:"id"`
	TypeID      uint64                 `json:"type_id"`
	RoomID      *uint64                `json:"room_id"`
	WarehouseID *uint64                `json:"warehouse_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Inn         string                 `json:"inn"`
	UID         string                 `json:"uid"`
	Specs       map[string]interface{} `json:"specs"`
	IsActive    bool                   `json:"is_active"`

	types.BaseEntity
}
