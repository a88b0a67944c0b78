package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/pkg/utils"
)

func seedEquipmentTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipment_types'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO equipment_types (name, slug, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (slug) DO NOTHING
	`

	for _, name := range equipmentTypesData {
		slug := utils.GenerateSlugFromName(name)
		if _, err := tx.Exec(ctx, query, name, slug); err != nil {
			log.Printf("Ошибка при вставке типа '%s': %v", name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
