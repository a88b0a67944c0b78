package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

// Фейковые репозитории держат состояние в памяти и игнорируют tx:
// транзакционность проверяется интеграционными тестами репозиториев,
// здесь проверяется логика машины состояний.

type fakeEquipmentRepo struct {
	repositories.EquipmentRepositoryInterface
	saved *entities.Equipment
}

func (f *fakeEquipmentRepo) UpdateState(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	cp := *equipment
	f.saved = &cp
	return nil
}

type fakeWarehouseRepo struct {
	repositories.WarehouseRepositoryInterface
	main *entities.Warehouse
}

func (f *fakeWarehouseRepo) GetMainInTx(ctx context.Context, tx pgx.Tx) (*entities.Warehouse, error) {
	if f.main == nil {
		return nil, apperrors.ErrNotFound
	}
	return f.main, nil
}

type fakeRepairRepo struct {
	repositories.RepairRepositoryInterface
	open    *entities.Repair
	created []entities.Repair
	closed  []struct {
		ID      uint64
		Status  string
		EndDate time.Time
	}
}

func (f *fakeRepairRepo) FindOpenByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Repair, error) {
	if f.open == nil || f.open.EquipmentID != equipmentID {
		return nil, apperrors.ErrNotFound
	}
	return f.open, nil
}

func (f *fakeRepairRepo) CreateRepair(ctx context.Context, tx pgx.Tx, repair entities.Repair) (uint64, error) {
	repair.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, repair)
	cp := repair
	f.open = &cp
	return repair.ID, nil
}

func (f *fakeRepairRepo) CloseRepair(ctx context.Context, tx pgx.Tx, id uint64, status string, endDate time.Time) error {
	if f.open == nil || f.open.ID != id {
		return apperrors.ErrAlreadyClosed
	}
	f.closed = append(f.closed, struct {
		ID      uint64
		Status  string
		EndDate time.Time
	}{id, status, endDate})
	f.open = nil
	return nil
}

type fakeDisposalRepo struct {
	repositories.DisposalRepositoryInterface
	existing *entities.Disposal
	created  []entities.Disposal
}

func (f *fakeDisposalRepo) FindByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.Disposal, error) {
	if f.existing == nil || f.existing.EquipmentID != equipmentID {
		return nil, apperrors.ErrNotFound
	}
	return f.existing, nil
}

func (f *fakeDisposalRepo) CreateDisposal(ctx context.Context, tx pgx.Tx, disposal entities.Disposal) (uint64, error) {
	disposal.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, disposal)
	cp := disposal
	f.existing = &cp
	return disposal.ID, nil
}

type fakeMovementRepo struct {
	repositories.MovementRepositoryInterface
	created []entities.MovementHistory
}

func (f *fakeMovementRepo) CreateMovement(ctx context.Context, tx pgx.Tx, movement entities.MovementHistory) (uint64, error) {
	movement.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, movement)
	return movement.ID, nil
}

type lifecycleFixture struct {
	svc        *LifecycleService
	equipment  *fakeEquipmentRepo
	warehouses *fakeWarehouseRepo
	repairs    *fakeRepairRepo
	disposals  *fakeDisposalRepo
	movements  *fakeMovementRepo
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		equipment: &fakeEquipmentRepo{},
		warehouses: &fakeWarehouseRepo{
			main: &entities.Warehouse{ID: 1, Name: "Центральный склад", IsMain: true},
		},
		repairs:   &fakeRepairRepo{},
		disposals: &fakeDisposalRepo{},
		movements: &fakeMovementRepo{},
	}
	f.svc = &LifecycleService{
		equipmentRepo: f.equipment,
		warehouseRepo: f.warehouses,
		repairRepo:    f.repairs,
		disposalRepo:  f.disposals,
		movementRepo:  f.movements,
		logger:        zap.NewNop(),
	}
	return f
}

func equipmentInStock(warehouseID uint64) *entities.Equipment {
	wid := warehouseID
	return &entities.Equipment{
		ID:          10,
		TypeID:      1,
		Name:        "Ноутбук",
		Status:      constants.StatusInStock,
		WarehouseID: &wid,
		IsActive:    true,
	}
}

func equipmentInUse(roomID uint64) *entities.Equipment {
	rid := roomID
	return &entities.Equipment{
		ID:       10,
		TypeID:   1,
		Name:     "Ноутбук",
		Status:   constants.StatusInUse,
		RoomID:   &rid,
		IsActive: true,
	}
}

func TestAllowedTransitions_Matrix(t *testing.T) {
	legal := map[[2]string]bool{
		{constants.StatusInStock, constants.StatusInUse}:     true,
		{constants.StatusInStock, constants.StatusDisposed}:  true,
		{constants.StatusInUse, constants.StatusInStock}:     true,
		{constants.StatusInUse, constants.StatusInRepair}:    true,
		{constants.StatusInUse, constants.StatusDisposed}:    true,
		{constants.StatusInRepair, constants.StatusInUse}:    true,
		{constants.StatusInRepair, constants.StatusInStock}:  true,
		{constants.StatusInRepair, constants.StatusDisposed}: true,
	}

	for _, from := range constants.EquipmentStatuses {
		for _, to := range constants.EquipmentStatuses {
			if from == to {
				continue
			}
			assert.Equal(t, legal[[2]string{from, to}], allowedTransitions[from][to],
				"переход %s -> %s", from, to)
		}
	}
}

func TestApplyTransition_IssueToRoom(t *testing.T) {
	f := newLifecycleFixture()
	eq := equipmentInStock(1)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInUse,
		LocationHint{RoomID: uintPtr(101)})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusInUse, saved.Status)
	require.NotNil(t, saved.RoomID)
	assert.Equal(t, uint64(101), *saved.RoomID)
	assert.Nil(t, saved.WarehouseID)

	// Выдача со склада в кабинет попадает в историю перемещений.
	require.Len(t, f.movements.created, 1)
	mv := f.movements.created[0]
	assert.Nil(t, mv.FromRoomID)
	require.NotNil(t, mv.ToRoomID)
	assert.Equal(t, uint64(101), *mv.ToRoomID)
}

func TestApplyTransition_SendToRepair(t *testing.T) {
	f := newLifecycleFixture()
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInRepair, LocationHint{})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusInRepair, saved.Status)
	assert.Nil(t, saved.RoomID)
	assert.Nil(t, saved.WarehouseID)

	require.Len(t, f.repairs.created, 1)
	rep := f.repairs.created[0]
	assert.Equal(t, constants.RepairPending, rep.Status)
	require.NotNil(t, rep.OriginalRoomID)
	assert.Equal(t, uint64(101), *rep.OriginalRoomID)
	assert.Nil(t, rep.EndDate)

	require.Len(t, f.movements.created, 1)
	mv := f.movements.created[0]
	require.NotNil(t, mv.FromRoomID)
	assert.Equal(t, uint64(101), *mv.FromRoomID)
	assert.Nil(t, mv.ToRoomID)
}

func TestApplyTransition_RepeatedRepairKeepsSingleEpisode(t *testing.T) {
	f := newLifecycleFixture()
	f.repairs.open = &entities.Repair{
		ID:             5,
		EquipmentID:    10,
		Status:         constants.RepairPending,
		OriginalRoomID: uintPtr(101),
	}
	eq := equipmentInUse(303)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInRepair, LocationHint{})
	require.NoError(t, err)

	// Открытый эпизод переиспользуется, новый не создается.
	assert.Empty(t, f.repairs.created)
}

func TestApplyTransition_ReturnFromRepairRestoresRoom(t *testing.T) {
	f := newLifecycleFixture()
	f.repairs.open = &entities.Repair{
		ID:             5,
		EquipmentID:    10,
		Status:         constants.RepairInProgress,
		OriginalRoomID: uintPtr(202),
	}
	eq := &entities.Equipment{ID: 10, TypeID: 1, Status: constants.StatusInRepair, IsActive: true}

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInUse, LocationHint{})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusInUse, saved.Status)
	require.NotNil(t, saved.RoomID)
	assert.Equal(t, uint64(202), *saved.RoomID)

	require.Len(t, f.repairs.closed, 1)
	assert.Equal(t, constants.RepairCompleted, f.repairs.closed[0].Status)
	assert.False(t, f.repairs.closed[0].EndDate.IsZero())
}

func TestApplyTransition_PendingRepairStaysOpenOnReturn(t *testing.T) {
	f := newLifecycleFixture()
	f.repairs.open = &entities.Repair{
		ID:             5,
		EquipmentID:    10,
		Status:         constants.RepairPending,
		OriginalRoomID: uintPtr(202),
	}
	eq := &entities.Equipment{ID: 10, TypeID: 1, Status: constants.StatusInRepair, IsActive: true}

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInUse, LocationHint{})
	require.NoError(t, err)

	// Работы не начинались, эпизод не закрывается.
	assert.Empty(t, f.repairs.closed)
	require.NotNil(t, f.repairs.open)
	assert.Equal(t, constants.RepairPending, f.repairs.open.Status)
}

func TestApplyTransition_ReturnToStockUsesMainWarehouse(t *testing.T) {
	f := newLifecycleFixture()
	f.warehouses.main.ID = 7
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInStock, LocationHint{})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusInStock, saved.Status)
	assert.Nil(t, saved.RoomID)
	require.NotNil(t, saved.WarehouseID)
	assert.Equal(t, uint64(7), *saved.WarehouseID)
}

func TestApplyTransition_NoMainWarehouse(t *testing.T) {
	f := newLifecycleFixture()
	f.warehouses.main = nil
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInStock, LocationHint{})
	require.ErrorIs(t, err, apperrors.ErrNoMainWarehouse)

	// Состояние не сохраняется, история не пишется.
	assert.Nil(t, f.equipment.saved)
	assert.Empty(t, f.movements.created)
}

func TestApplyTransition_DisposeFromUse(t *testing.T) {
	f := newLifecycleFixture()
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusDisposed, LocationHint{})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusDisposed, saved.Status)
	assert.Nil(t, saved.RoomID)
	assert.Nil(t, saved.WarehouseID)

	require.Len(t, f.disposals.created, 1)
	d := f.disposals.created[0]
	assert.Equal(t, constants.DisposalReasonDefault, d.Reason)
	require.NotNil(t, d.OriginalRoomID)
	assert.Equal(t, uint64(101), *d.OriginalRoomID)
}

func TestApplyTransition_DisposeFromRepair(t *testing.T) {
	f := newLifecycleFixture()
	f.repairs.open = &entities.Repair{
		ID:          5,
		EquipmentID: 10,
		Status:      constants.RepairInProgress,
	}
	eq := &entities.Equipment{ID: 10, TypeID: 1, Status: constants.StatusInRepair, IsActive: true}

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusDisposed, LocationHint{})
	require.NoError(t, err)

	require.Len(t, f.disposals.created, 1)
	assert.Equal(t, constants.DisposalReasonFailedRepair, f.disposals.created[0].Reason)

	require.Len(t, f.repairs.closed, 1)
	assert.Equal(t, constants.RepairFailed, f.repairs.closed[0].Status)
}

// Оборудование, возвращенное из утилизации принудительным переводом,
// утилизируется повторно: переход проходит, но акт переиспользуется.
func TestApplyTransition_RepeatedDisposalReusesRecord(t *testing.T) {
	f := newLifecycleFixture()
	f.disposals.existing = &entities.Disposal{ID: 1, EquipmentID: 10, Reason: constants.DisposalReasonDefault}
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusDisposed, LocationHint{})
	require.NoError(t, err)

	saved := f.equipment.saved
	require.NotNil(t, saved)
	assert.Equal(t, constants.StatusDisposed, saved.Status)
	assert.Nil(t, saved.RoomID)
	assert.Nil(t, saved.WarehouseID)
	assert.Empty(t, f.disposals.created)
}

func TestApplyTransition_WarehouseMoveNotHistorized(t *testing.T) {
	f := newLifecycleFixture()
	eq := equipmentInStock(1)

	// Утилизация со склада: кабинет как был nil, так и остался.
	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusDisposed, LocationHint{})
	require.NoError(t, err)
	assert.Empty(t, f.movements.created)
}

func TestApplyTransition_IllegalHintRejectedBeforeWrites(t *testing.T) {
	f := newLifecycleFixture()
	eq := equipmentInUse(101)

	err := f.svc.applyTransition(context.Background(), nil, eq, constants.StatusInRepair,
		LocationHint{RoomID: uintPtr(55)})
	require.Error(t, err)
	assert.True(t, apperrors.IsPreconditionError(err))
	assert.Nil(t, f.equipment.saved)
	assert.Empty(t, f.repairs.created)
}
