package main

import (
	"context"
	"flag"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	"inventory-system/seeders"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runDicts := flag.Bool("dictionaries", false, "Запустить наполнение справочников (склады, типы, кабинеты)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runDicts && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -dictionaries")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runDicts {
		seeders.SeedDictionaries(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
