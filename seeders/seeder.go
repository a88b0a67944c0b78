package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники: склады (с главным), типы
// оборудования со спецификациями и кабинеты. Все сидеры идемпотентны.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск наполнения справочников...")

	if err := seedWarehouses(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения складов: %v", err)
	}
	if err := seedEquipmentTypes(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения типов оборудования: %v", err)
	}
	if err := seedSpecifications(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения спецификаций: %v", err)
	}
	if err := seedRooms(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения кабинетов: %v", err)
	}

	log.Println("Наполнение справочников завершено.")
}
