package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

var uintPtr = utils.ToPtr[uint64]

// mainWarehouseStub возвращает фиксированный id главного склада.
func mainWarehouseStub(id uint64) MainWarehouseFunc {
	return func(ctx context.Context) (uint64, error) {
		return id, nil
	}
}

// mainWarehouseMissing имитирует отсутствие главного склада.
func mainWarehouseMissing(ctx context.Context) (uint64, error) {
	return 0, apperrors.ErrNoMainWarehouse
}

func TestResolvePlacement_InUse(t *testing.T) {
	ctx := context.Background()

	t.Run("выдача со склада в указанный кабинет", func(t *testing.T) {
		p, err := ResolvePlacement(ctx, constants.StatusInStock, constants.StatusInUse, nil,
			LocationHint{RoomID: uintPtr(101)}, mainWarehouseStub(1))
		require.NoError(t, err)
		require.NotNil(t, p.RoomID)
		assert.Equal(t, uint64(101), *p.RoomID)
		assert.Nil(t, p.WarehouseID)
	})

	t.Run("без кабинета выдача невозможна", func(t *testing.T) {
		_, err := ResolvePlacement(ctx, constants.StatusInStock, constants.StatusInUse, nil,
			LocationHint{}, mainWarehouseStub(1))
		require.Error(t, err)
		assert.True(t, apperrors.IsPreconditionError(err))
	})

	t.Run("возврат из ремонта восстанавливает исходный кабинет", func(t *testing.T) {
		p, err := ResolvePlacement(ctx, constants.StatusInRepair, constants.StatusInUse, uintPtr(202),
			LocationHint{}, mainWarehouseStub(1))
		require.NoError(t, err)
		require.NotNil(t, p.RoomID)
		assert.Equal(t, uint64(202), *p.RoomID)
		assert.Nil(t, p.WarehouseID)
	})

	t.Run("исходный кабинет из ремонта важнее подсказки", func(t *testing.T) {
		// Запись о ремонте хранит, откуда оборудование забрали.
		p, err := ResolvePlacement(ctx, constants.StatusInRepair, constants.StatusInUse, uintPtr(202),
			LocationHint{RoomID: uintPtr(999)}, mainWarehouseStub(1))
		require.NoError(t, err)
		assert.Equal(t, uint64(202), *p.RoomID)
	})

	t.Run("возврат из ремонта без исходного кабинета требует подсказку", func(t *testing.T) {
		_, err := ResolvePlacement(ctx, constants.StatusInRepair, constants.StatusInUse, nil,
			LocationHint{}, mainWarehouseStub(1))
		require.Error(t, err)
		assert.True(t, apperrors.IsPreconditionError(err))
	})

	t.Run("склад при выдаче недопустим", func(t *testing.T) {
		_, err := ResolvePlacement(ctx, constants.StatusInStock, constants.StatusInUse, nil,
			LocationHint{WarehouseID: uintPtr(5)}, mainWarehouseStub(1))
		require.Error(t, err)
		assert.True(t, apperrors.IsPreconditionError(err))
	})
}

func TestResolvePlacement_InStock(t *testing.T) {
	ctx := context.Background()

	t.Run("возврат без подсказки уходит на главный склад", func(t *testing.T) {
		p, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusInStock, nil,
			LocationHint{}, mainWarehouseStub(7))
		require.NoError(t, err)
		require.NotNil(t, p.WarehouseID)
		assert.Equal(t, uint64(7), *p.WarehouseID)
		assert.Nil(t, p.RoomID)
	})

	t.Run("склад в запросе при возврате отклоняется", func(t *testing.T) {
		// Возврат на хранение всегда идет на главный склад, даже если
		// в запросе указан другой.
		_, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusInStock, nil,
			LocationHint{WarehouseID: uintPtr(3)}, mainWarehouseStub(7))
		require.Error(t, err)
		assert.True(t, apperrors.IsPreconditionError(err))
	})

	t.Run("главный склад не настроен", func(t *testing.T) {
		_, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusInStock, nil,
			LocationHint{}, mainWarehouseMissing)
		require.ErrorIs(t, err, apperrors.ErrNoMainWarehouse)
	})

	t.Run("кабинет при возврате на склад недопустим", func(t *testing.T) {
		_, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusInStock, nil,
			LocationHint{RoomID: uintPtr(101)}, mainWarehouseStub(7))
		require.Error(t, err)
		assert.True(t, apperrors.IsPreconditionError(err))
	})
}

func TestResolvePlacement_RepairAndDisposed(t *testing.T) {
	ctx := context.Background()

	t.Run("в ремонте размещение пустое", func(t *testing.T) {
		p, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusInRepair, nil,
			LocationHint{}, mainWarehouseStub(1))
		require.NoError(t, err)
		assert.Nil(t, p.RoomID)
		assert.Nil(t, p.WarehouseID)
	})

	t.Run("при утилизации размещение пустое", func(t *testing.T) {
		p, err := ResolvePlacement(ctx, constants.StatusInUse, constants.StatusDisposed, nil,
			LocationHint{}, mainWarehouseStub(1))
		require.NoError(t, err)
		assert.Nil(t, p.RoomID)
		assert.Nil(t, p.WarehouseID)
	})

	t.Run("подсказки при ремонте и утилизации отклоняются", func(t *testing.T) {
		for _, target := range []string{constants.StatusInRepair, constants.StatusDisposed} {
			_, err := ResolvePlacement(ctx, constants.StatusInUse, target, nil,
				LocationHint{RoomID: uintPtr(101)}, mainWarehouseStub(1))
			require.Error(t, err, "цель %s", target)
			assert.True(t, apperrors.IsPreconditionError(err))
		}
	})
}

func TestResolvePlacement_HintConflict(t *testing.T) {
	_, err := ResolvePlacement(context.Background(), constants.StatusInStock, constants.StatusInUse, nil,
		LocationHint{RoomID: uintPtr(1), WarehouseID: uintPtr(2)}, mainWarehouseStub(1))
	require.Error(t, err)
	assert.True(t, apperrors.IsPreconditionError(err))
}

func TestResolvePlacement_UnknownStatus(t *testing.T) {
	_, err := ResolvePlacement(context.Background(), constants.StatusInStock, "lost",
		nil, LocationHint{}, mainWarehouseStub(1))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInputError(err))
}
