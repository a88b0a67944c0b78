package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRooms(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'rooms'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rooms (number, name, is_special, created_at, updated_at)
		SELECT $1, $2, $3, NOW(), NOW()
		WHERE NOT EXISTS (SELECT 1 FROM rooms WHERE number = $1)
	`

	for _, r := range roomsData {
		if _, err := tx.Exec(ctx, query, r.Number, r.Name, r.IsSpecial); err != nil {
			log.Printf("Ошибка при вставке кабинета '%s': %v", r.Number, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
