package services

import (
	"context"

	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

// MainWarehouseFunc отдает id главного склада. Возвращает
// apperrors.ErrNoMainWarehouse, если главный склад не назначен.
type MainWarehouseFunc func(ctx context.Context) (uint64, error)

// Placement - вычисленное размещение после перехода.
// Оба поля nil допустимы только для in_repair и disposed.
type Placement struct {
	RoomID      *uint64
	WarehouseID *uint64
}

// LocationHint - подсказка размещения из запроса.
type LocationHint struct {
	RoomID      *uint64
	WarehouseID *uint64
}

// ResolvePlacement - чистое отображение (текущий статус, целевой статус,
// подсказка) в новое размещение. Никакого I/O кроме инъецированного поиска
// главного склада; вся логика проверяется табличными тестами.
func ResolvePlacement(
	ctx context.Context,
	currentStatus, targetStatus string,
	repairOriginalRoomID *uint64,
	hint LocationHint,
	mainWarehouse MainWarehouseFunc,
) (Placement, error) {
	if hint.RoomID != nil && hint.WarehouseID != nil {
		return Placement{}, apperrors.NewPreconditionError("нельзя одновременно указывать кабинет и склад")
	}

	switch targetStatus {
	case constants.StatusInUse:
		roomID := hint.RoomID
		if currentStatus == constants.StatusInRepair && repairOriginalRoomID != nil {
			// Возврат из ремонта: кабинет восстанавливается из записи о ремонте.
			roomID = repairOriginalRoomID
		}
		if roomID == nil {
			return Placement{}, apperrors.NewPreconditionError("для выдачи в эксплуатацию требуется кабинет")
		}
		if hint.WarehouseID != nil {
			return Placement{}, apperrors.NewPreconditionError("оборудование в эксплуатации не может находиться на складе")
		}
		return Placement{RoomID: roomID}, nil

	case constants.StatusInStock:
		if hint.RoomID != nil {
			return Placement{}, apperrors.NewPreconditionError("оборудование на складе не может находиться в кабинете")
		}
		// Возврат на хранение всегда идет на главный склад, склад в запросе
		// не принимается.
		if hint.WarehouseID != nil {
			return Placement{}, apperrors.NewPreconditionError("при возврате на склад склад не указывается: оборудование поступает на главный склад")
		}
		mainID, err := mainWarehouse(ctx)
		if err != nil {
			return Placement{}, err
		}
		return Placement{WarehouseID: &mainID}, nil

	case constants.StatusInRepair:
		if hint.RoomID != nil || hint.WarehouseID != nil {
			return Placement{}, apperrors.NewPreconditionError("при передаче в ремонт размещение не указывается")
		}
		return Placement{}, nil

	case constants.StatusDisposed:
		if hint.RoomID != nil || hint.WarehouseID != nil {
			return Placement{}, apperrors.NewPreconditionError("при утилизации размещение не указывается")
		}
		return Placement{}, nil
	}

	return Placement{}, apperrors.NewInvalidInputError("неизвестный статус '%s'", targetStatus)
}
