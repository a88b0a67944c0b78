package seeders

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedWarehouses(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'warehouses'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO warehouses (name, address, description, is_main, uid, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, NOW(), NOW())
		ON CONFLICT DO NOTHING
	`

	for _, w := range warehousesData {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM warehouses WHERE name = $1)`, w.Name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(ctx, query, w.Name, w.Address, w.Description, uuid.NewString()); err != nil {
			log.Printf("Ошибка при вставке склада '%s': %v", w.Name, err)
			return err
		}
	}

	// Главный склад назначается отдельно: сперва снимаем флаг, затем ставим.
	// Так не нарушается частичный уникальный индекс.
	for _, w := range warehousesData {
		if !w.IsMain {
			continue
		}
		var mainExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM warehouses WHERE is_main = TRUE)`).Scan(&mainExists); err != nil {
			return err
		}
		if mainExists {
			break
		}
		if _, err := tx.Exec(ctx, `UPDATE warehouses SET is_main = TRUE WHERE name = $1`, w.Name); err != nil {
			return err
		}
		break
	}

	return tx.Commit(ctx)
}
