package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryItem — стек предметов в инвентаре персонажа.
type InventoryItem struct {
	ItemID   int64
	Quantity int32
}

// InventoryRepository управляет инвентарём персонажей.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository создаёт новый InventoryRepository.
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Add добавляет qty предметов itemID персонажу.
func (r *InventoryRepository) Add(ctx context.Context, characterID, itemID int64, qty int32) error {
	return addInventoryItem(ctx, r.db, characterID, itemID, qty)
}

// AddTx добавляет предметы в рамках транзакции.
func (r *InventoryRepository) AddTx(ctx context.Context, tx pgx.Tx, characterID, itemID int64, qty int32) error {
	return addInventoryItem(ctx, tx, characterID, itemID, qty)
}

// LoadInventory загружает инвентарь персонажа, отсортированный по item_id.
func (r *InventoryRepository) LoadInventory(ctx context.Context, characterID int64) ([]InventoryItem, error) {
	query := `
		SELECT item_id, quantity
		FROM inventory_items
		WHERE character_id = $1
		ORDER BY item_id
	`
	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying inventory of character %d: %w", characterID, err)
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ItemID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory rows: %w", err)
	}
	return items, nil
}

func addInventoryItem(ctx context.Context, q querier, characterID, itemID int64, qty int32) error {
	if qty <= 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_items (character_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id, item_id)
		DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity
	`
	if _, err := q.Exec(ctx, query, characterID, itemID, qty); err != nil {
		return fmt.Errorf("adding item %d to character %d: %w", itemID, characterID, err)
	}
	return nil
}
