package seeders

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/pkg/utils"
)

func seedSpecifications(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipment_specifications'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO equipment_specifications (type_id, name, specs, created_at, updated_at)
		SELECT t.id, $2, $3, NOW(), NOW()
		FROM equipment_types t
		WHERE t.slug = $1
		  AND NOT EXISTS (
			SELECT 1 FROM equipment_specifications s WHERE s.type_id = t.id AND s.name = $2
		  )
	`

	for _, sp := range specificationsData {
		specsJSON, err := json.Marshal(sp.Specs)
		if err != nil {
			return err
		}
		slug := utils.GenerateSlugFromName(sp.TypeName)
		if _, err := tx.Exec(ctx, query, slug, sp.Name, specsJSON); err != nil {
			log.Printf("Ошибка при вставке спецификации '%s': %v", sp.Name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
