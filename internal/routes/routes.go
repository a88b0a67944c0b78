package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/middleware"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")
	adminGate := middleware.NewAdminGate(cfg.Admin.APIKey, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	warehouseRepo := repositories.NewWarehouseRepository(dbConn, logger)
	repairRepo := repositories.NewRepairRepository(dbConn, logger)
	disposalRepo := repositories.NewDisposalRepository(dbConn, logger)
	movementRepo := repositories.NewMovementRepository(dbConn, logger)
	typeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	specificationRepo := repositories.NewSpecificationRepository(dbConn)
	roomRepo := repositories.NewRoomRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	warehouseService := services.NewWarehouseService(dbConn, warehouseRepo, cacheRepo, logger, cfg.Cache.MainWarehouseTTL)
	equipmentService := services.NewEquipmentService(dbConn, equipmentRepo, typeRepo, specificationRepo, warehouseService, logger)
	lifecycleService := services.NewLifecycleService(dbConn, equipmentRepo, warehouseRepo, repairRepo, disposalRepo, movementRepo, logger)
	equipmentTypeService := services.NewEquipmentTypeService(typeRepo, logger)
	specificationService := services.NewSpecificationService(specificationRepo, typeRepo, logger)
	repairService := services.NewRepairService(dbConn, repairRepo, equipmentRepo, roomRepo, logger)
	disposalService := services.NewDisposalService(disposalRepo, equipmentRepo, roomRepo, logger)
	movementService := services.NewMovementService(movementRepo, equipmentRepo, roomRepo)
	roomService := services.NewRoomService(roomRepo)
	importService := services.NewEquipmentImportService(equipmentService, equipmentTypeService, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, lifecycleService, importService, logger)
	warehouseCtrl := controllers.NewWarehouseController(warehouseService, logger)
	equipmentTypeCtrl := controllers.NewEquipmentTypeController(equipmentTypeService, logger)
	specificationCtrl := controllers.NewSpecificationController(specificationService, logger)
	repairCtrl := controllers.NewRepairController(repairService, logger)
	disposalCtrl := controllers.NewDisposalController(disposalService, logger)
	movementCtrl := controllers.NewMovementController(movementService, logger)
	roomCtrl := controllers.NewRoomController(roomService, logger)

	// --- 4. РОУТЕРЫ ---
	runEquipmentRouter(api, equipmentCtrl, adminGate)
	runWarehouseRouter(api, warehouseCtrl)
	runEquipmentTypeRouter(api, equipmentTypeCtrl)
	runSpecificationRouter(api, specificationCtrl)
	runRepairRouter(api, repairCtrl)
	runDisposalRouter(api, disposalCtrl)
	runMovementRouter(api, movementCtrl)
	runRoomRouter(api, roomCtrl)

	logger.Info("InitRouter: создание маршрутов завершено")
}
