package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps a pgx connection pool and the repositories built on it.
type DB struct {
	pool       *pgxpool.Pool
	characters *CharacterRepository
	inventory  *InventoryRepository
	encounters *EncounterRepository
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return NewFromPool(pool), nil
}

// NewFromPool wraps an existing pool.
func NewFromPool(pool *pgxpool.Pool) *DB {
	return &DB{
		pool:       pool,
		characters: NewCharacterRepository(pool),
		inventory:  NewInventoryRepository(pool),
		encounters: NewEncounterRepository(pool),
	}
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Characters returns the character repository.
func (d *DB) Characters() *CharacterRepository { return d.characters }

// Inventory returns the inventory repository.
func (d *DB) Inventory() *InventoryRepository { return d.inventory }

// Encounters returns the encounter repository.
func (d *DB) Encounters() *EncounterRepository { return d.encounters }

// InTx runs fn in a single transaction. Implements store.Store.
// Commits when fn returns nil, rolls back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	if err := fn(ctx, &pgTx{db: d, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// pgTx adapts a pgx transaction to store.Tx.
type pgTx struct {
	db *DB
	tx pgx.Tx
}

func (t *pgTx) LockCharacter(ctx context.Context, id int64) (*model.Character, error) {
	return t.db.characters.LockTx(ctx, t.tx, id)
}

func (t *pgTx) SaveCharacter(ctx context.Context, c *model.Character) error {
	return t.db.characters.UpdateTx(ctx, t.tx, c)
}

func (t *pgTx) AddInventoryItem(ctx context.Context, characterID, itemID int64, qty int32) error {
	return t.db.inventory.AddTx(ctx, t.tx, characterID, itemID, qty)
}

func (t *pgTx) RecordEncounter(ctx context.Context, e *model.Encounter) error {
	return t.db.encounters.CreateTx(ctx, t.tx, e)
}
