package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlego/internal/model"
)

// ErrDuplicateID is returned when two catalog entries of the same kind share an ID.
var ErrDuplicateID = errors.New("duplicate catalog id")

// Monster is a catalog monster template.
type Monster struct {
	ID         int64
	Name       string
	Attributes model.Attributes
	HP         int32
	Mana       int32
	Equipment  []*model.Equipment
}

// Combatant builds a fresh battle snapshot of the monster at full HP and mana.
func (m *Monster) Combatant() *model.Combatant {
	c := &model.Combatant{
		Name:       m.Name,
		Attributes: m.Attributes,
		HP:         m.HP,
		MaxHP:      m.HP,
		Mana:       m.Mana,
		MaxMana:    m.Mana,
	}
	for _, eq := range m.Equipment {
		c.Equip(eq)
	}
	return c
}

// ItemDrop is one possible drop of a hunt monster. Chance is a percent.
type ItemDrop struct {
	ItemID int64
	Chance float64
}

// HuntMonster is a monster entry of a hunt with its rewards.
// Chance weights how often this monster is encountered.
type HuntMonster struct {
	Monster *Monster
	Chance  int32
	XP      int64
	Gold    int64
	Drops   []ItemDrop
}

// Hunt is a hunting ground.
type Hunt struct {
	ID       int64
	Name     string
	Monsters []HuntMonster
}

// PickMonster draws a monster, weighted by Chance. rng must return values in
// [0, 1). Returns nil when no entry has a positive weight.
func (h *Hunt) PickMonster(rng interface{ Float64() float64 }) *HuntMonster {
	total := int32(0)
	for _, m := range h.Monsters {
		if m.Chance > 0 {
			total += m.Chance
		}
	}
	if total == 0 {
		return nil
	}
	roll := min(int32(rng.Float64()*float64(total)), total-1)
	for i := range h.Monsters {
		m := &h.Monsters[i]
		if m.Chance <= 0 {
			continue
		}
		if roll < m.Chance {
			return m
		}
		roll -= m.Chance
	}
	return nil
}

// Catalog holds equipment, monster and hunt definitions. It is immutable after
// loading and safe for concurrent reads.
type Catalog struct {
	equipment map[int64]*model.Equipment
	monsters  map[int64]*Monster
	hunts     map[int64]*Hunt
}

// Equipment returns equipment by ID. Implements model.EquipmentSource.
func (c *Catalog) Equipment(id int64) (*model.Equipment, bool) {
	eq, ok := c.equipment[id]
	return eq, ok
}

// Monster returns a monster template by ID.
func (c *Catalog) Monster(id int64) (*Monster, bool) {
	m, ok := c.monsters[id]
	return m, ok
}

// Hunt returns a hunt by ID.
func (c *Catalog) Hunt(id int64) (*Hunt, bool) {
	h, ok := c.hunts[id]
	return h, ok
}

// Counts returns the number of equipment, monster and hunt entries.
func (c *Catalog) Counts() (equipment, monsters, hunts int) {
	return len(c.equipment), len(c.monsters), len(c.hunts)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	e, m, h := cat.Counts()
	slog.Info("loaded catalog", "path", path, "equipment", e, "monsters", m, "hunts", h)
	return cat, nil
}

// ParseCatalog builds a catalog from YAML.
//
// Structural problems (unknown slot, duplicate or dangling IDs) fail the load.
// Content problems inside an item (unknown bonus attribute, malformed passive
// effect) are logged and the offending part is dropped.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	cat := &Catalog{
		equipment: make(map[int64]*model.Equipment, len(f.Equipment)),
		monsters:  make(map[int64]*Monster, len(f.Monsters)),
		hunts:     make(map[int64]*Hunt, len(f.Hunts)),
	}

	for _, ef := range f.Equipment {
		eq, err := ef.build()
		if err != nil {
			return nil, fmt.Errorf("equipment %d: %w", ef.ID, err)
		}
		if _, dup := cat.equipment[eq.ID]; dup {
			return nil, fmt.Errorf("equipment %d: %w", eq.ID, ErrDuplicateID)
		}
		cat.equipment[eq.ID] = eq
	}

	for _, mf := range f.Monsters {
		m, err := mf.build(cat)
		if err != nil {
			return nil, fmt.Errorf("monster %d: %w", mf.ID, err)
		}
		if _, dup := cat.monsters[m.ID]; dup {
			return nil, fmt.Errorf("monster %d: %w", m.ID, ErrDuplicateID)
		}
		cat.monsters[m.ID] = m
	}

	for _, hf := range f.Hunts {
		h, err := hf.build(cat)
		if err != nil {
			return nil, fmt.Errorf("hunt %d: %w", hf.ID, err)
		}
		if _, dup := cat.hunts[h.ID]; dup {
			return nil, fmt.Errorf("hunt %d: %w", h.ID, ErrDuplicateID)
		}
		cat.hunts[h.ID] = h
	}

	return cat, nil
}
