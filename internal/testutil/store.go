package testutil

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
)

// MemStore — in-memory имплементация store.Store для unit тестов.
// Транзакции сериализуются; изменения видны только после успешного fn.
type MemStore struct {
	mu         sync.Mutex
	nextID     int64
	characters map[int64]model.Character
	inventory  map[int64]map[int64]int32
	encounters []*model.Encounter

	// FailRecord, если не nil, возвращается из RecordEncounter (проверка rollback).
	FailRecord error
}

// NewMemStore создаёт пустой MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		characters: make(map[int64]model.Character),
		inventory:  make(map[int64]map[int64]int32),
	}
}

// AddCharacter сохраняет копию c, назначая ID если он 0. Возвращает ID.
func (m *MemStore) AddCharacter(c *model.Character) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	} else if c.ID > m.nextID {
		m.nextID = c.ID
	}
	m.characters[c.ID] = *c
	return c.ID
}

// Character возвращает копию сохранённого персонажа.
func (m *MemStore) Character(id int64) (*model.Character, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.characters[id]
	if !ok {
		return nil, false
	}
	return &c, true
}

// Inventory возвращает копию инвентаря персонажа (item_id → quantity).
func (m *MemStore) Inventory(characterID int64) map[int64]int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.inventory[characterID])
}

// Encounters возвращает записанные бои в порядке записи.
func (m *MemStore) Encounters() []*model.Encounter {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.Encounter(nil), m.encounters...)
}

// InTx implements store.Store.
func (m *MemStore) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		store:      m,
		characters: make(map[int64]model.Character),
		inventory:  make(map[int64]map[int64]int32),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	// commit
	for id, c := range tx.characters {
		m.characters[id] = c
	}
	for id, added := range tx.inventory {
		inv := m.inventory[id]
		if inv == nil {
			inv = make(map[int64]int32)
			m.inventory[id] = inv
		}
		for item, qty := range added {
			inv[item] += qty
		}
	}
	m.encounters = append(m.encounters, tx.encounters...)
	return nil
}

type memTx struct {
	store      *MemStore
	characters map[int64]model.Character
	inventory  map[int64]map[int64]int32
	encounters []*model.Encounter
}

func (t *memTx) LockCharacter(_ context.Context, id int64) (*model.Character, error) {
	if c, ok := t.characters[id]; ok {
		return &c, nil
	}
	c, ok := t.store.characters[id]
	if !ok {
		return nil, store.ErrCharacterNotFound
	}
	return &c, nil
}

func (t *memTx) SaveCharacter(_ context.Context, c *model.Character) error {
	if _, ok := t.store.characters[c.ID]; !ok {
		return fmt.Errorf("saving character %d: %w", c.ID, store.ErrCharacterNotFound)
	}
	t.characters[c.ID] = *c
	return nil
}

func (t *memTx) AddInventoryItem(_ context.Context, characterID, itemID int64, qty int32) error {
	if qty <= 0 {
		return nil
	}
	inv := t.inventory[characterID]
	if inv == nil {
		inv = make(map[int64]int32)
		t.inventory[characterID] = inv
	}
	inv[itemID] += qty
	return nil
}

func (t *memTx) RecordEncounter(_ context.Context, e *model.Encounter) error {
	if t.store.FailRecord != nil {
		return t.store.FailRecord
	}
	t.encounters = append(t.encounters, e)
	return nil
}
