// Package store declares the persistence boundary the hunt and arena workflows
// run against. internal/db provides the PostgreSQL implementation and
// internal/testutil an in-memory one.
package store

import (
	"context"
	"errors"

	"github.com/udisondev/battlego/internal/model"
)

// ErrCharacterNotFound is returned when a character ID has no record.
var ErrCharacterNotFound = errors.New("character not found")

// Tx is a unit of work. Characters returned by LockCharacter stay locked
// against concurrent battles until the transaction ends.
type Tx interface {
	// LockCharacter loads and row-locks a character.
	LockCharacter(ctx context.Context, id int64) (*model.Character, error)
	// SaveCharacter persists the mutable fields of c.
	SaveCharacter(ctx context.Context, c *model.Character) error
	// AddInventoryItem adds qty of itemID to the character's inventory.
	AddInventoryItem(ctx context.Context, characterID, itemID int64, qty int32) error
	// RecordEncounter stores a battle summary.
	RecordEncounter(ctx context.Context, e *model.Encounter) error
}

// Store runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
