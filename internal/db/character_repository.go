package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
)

const characterColumns = `
	character_id, name, level, exp, max_exp, attribute_points,
	hp, max_hp, mana, max_mana,
	strength, dexterity, arcane, constitution, courage, luck,
	gold, arena_points,
	equipped_head, equipped_necklace, equipped_shoulders,
	equipped_chest, equipped_hands, equipped_feet`

// CharacterRepository управляет персонажами в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create сохраняет нового персонажа и заполняет c.ID.
func (r *CharacterRepository) Create(ctx context.Context, c *model.Character) error {
	query := `
		INSERT INTO characters (name, level, exp, max_exp, attribute_points,
		                        hp, max_hp, mana, max_mana,
		                        strength, dexterity, arcane, constitution, courage, luck,
		                        gold, arena_points,
		                        equipped_head, equipped_necklace, equipped_shoulders,
		                        equipped_chest, equipped_hands, equipped_feet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING character_id
	`
	args := append([]any{c.Name}, characterValues(c)...)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("creating character %s: %w", c.Name, err)
	}
	return nil
}

// LoadByID загружает персонажа по ID.
// Возвращает nil если персонаж не найден (не ошибка).
func (r *CharacterRepository) LoadByID(ctx context.Context, characterID int64) (*model.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1`

	c, err := scanCharacter(r.db.QueryRow(ctx, query, characterID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading character %d: %w", characterID, err)
	}
	return c, nil
}

// LockTx загружает персонажа с блокировкой строки (SELECT ... FOR UPDATE).
// Возвращает store.ErrCharacterNotFound если персонажа нет.
func (r *CharacterRepository) LockTx(ctx context.Context, tx pgx.Tx, characterID int64) (*model.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 FOR UPDATE`

	c, err := scanCharacter(tx.QueryRow(ctx, query, characterID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrCharacterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking character %d: %w", characterID, err)
	}
	return c, nil
}

// Update обновляет персонажа вне транзакции.
func (r *CharacterRepository) Update(ctx context.Context, c *model.Character) error {
	return updateCharacter(ctx, r.db, c)
}

// UpdateTx обновляет персонажа в рамках транзакции.
func (r *CharacterRepository) UpdateTx(ctx context.Context, tx pgx.Tx, c *model.Character) error {
	return updateCharacter(ctx, tx, c)
}

// Equip надевает предмет itemID в слот slot (0 снимает предмет).
func (r *CharacterRepository) Equip(ctx context.Context, characterID int64, slot model.Slot, itemID int64) error {
	column, ok := equippedColumn(slot)
	if !ok {
		return fmt.Errorf("equipping slot %d: %w", slot, model.ErrUnknownSlot)
	}

	query := `UPDATE characters SET ` + column + ` = $2 WHERE character_id = $1`
	tag, err := r.db.Exec(ctx, query, characterID, nullableID(itemID))
	if err != nil {
		return fmt.Errorf("equipping item %d on character %d: %w", itemID, characterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("equipping character %d: %w", characterID, store.ErrCharacterNotFound)
	}
	return nil
}

func updateCharacter(ctx context.Context, q querier, c *model.Character) error {
	query := `
		UPDATE characters
		SET level = $2, exp = $3, max_exp = $4, attribute_points = $5,
		    hp = $6, max_hp = $7, mana = $8, max_mana = $9,
		    strength = $10, dexterity = $11, arcane = $12,
		    constitution = $13, courage = $14, luck = $15,
		    gold = $16, arena_points = $17,
		    equipped_head = $18, equipped_necklace = $19, equipped_shoulders = $20,
		    equipped_chest = $21, equipped_hands = $22, equipped_feet = $23
		WHERE character_id = $1
	`
	args := append([]any{c.ID}, characterValues(c)...)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating character %d: %w", c.ID, store.ErrCharacterNotFound)
	}
	return nil
}

// characterValues возвращает значения колонок после name/character_id в порядке characterColumns.
func characterValues(c *model.Character) []any {
	a := c.Attributes
	return []any{
		c.Level, c.Exp, c.MaxExp, c.AttributePoints,
		c.HP, c.MaxHP, c.Mana, c.MaxMana,
		a[model.AttrStrength], a[model.AttrDexterity], a[model.AttrArcane],
		a[model.AttrConstitution], a[model.AttrCourage], a[model.AttrLuck],
		c.Gold, c.ArenaPoints,
		nullableID(c.Equipped[model.SlotHead]),
		nullableID(c.Equipped[model.SlotNecklace]),
		nullableID(c.Equipped[model.SlotShoulders]),
		nullableID(c.Equipped[model.SlotChest]),
		nullableID(c.Equipped[model.SlotHands]),
		nullableID(c.Equipped[model.SlotFeet]),
	}
}

func scanCharacter(row pgx.Row) (*model.Character, error) {
	var c model.Character
	var equipped [model.SlotCount]*int64

	err := row.Scan(
		&c.ID, &c.Name, &c.Level, &c.Exp, &c.MaxExp, &c.AttributePoints,
		&c.HP, &c.MaxHP, &c.Mana, &c.MaxMana,
		&c.Attributes[model.AttrStrength], &c.Attributes[model.AttrDexterity],
		&c.Attributes[model.AttrArcane], &c.Attributes[model.AttrConstitution],
		&c.Attributes[model.AttrCourage], &c.Attributes[model.AttrLuck],
		&c.Gold, &c.ArenaPoints,
		&equipped[model.SlotHead], &equipped[model.SlotNecklace], &equipped[model.SlotShoulders],
		&equipped[model.SlotChest], &equipped[model.SlotHands], &equipped[model.SlotFeet],
	)
	if err != nil {
		return nil, err
	}

	for slot, id := range equipped {
		if id != nil {
			c.Equipped[slot] = *id
		}
	}
	return &c, nil
}

// nullableID превращает 0 (пустой слот) в NULL.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func equippedColumn(slot model.Slot) (string, bool) {
	switch slot {
	case model.SlotHead:
		return "equipped_head", true
	case model.SlotNecklace:
		return "equipped_necklace", true
	case model.SlotShoulders:
		return "equipped_shoulders", true
	case model.SlotChest:
		return "equipped_chest", true
	case model.SlotHands:
		return "equipped_hands", true
	case model.SlotFeet:
		return "equipped_feet", true
	default:
		return "", false
	}
}
