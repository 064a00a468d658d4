package model

// Character is the persistent player record.
// Equipped holds catalog equipment IDs per slot (0 = empty).
type Character struct {
	ID              int64
	Name            string
	Level           int32
	Exp             int64
	MaxExp          int64
	AttributePoints int32
	HP              int32
	MaxHP           int32
	Mana            int32
	MaxMana         int32
	Attributes      Attributes
	Gold            int64
	ArenaPoints     int32
	Equipped        [SlotCount]int64
}

// EquipmentSource resolves catalog equipment by ID.
type EquipmentSource interface {
	Equipment(id int64) (*Equipment, bool)
}

// StartingArenaPoints is the arena rating of a new character.
const StartingArenaPoints = 1000

// NewCharacter returns a level 1 character with default pools and all attributes at 1.
func NewCharacter(name string) *Character {
	return &Character{
		Name:        name,
		Level:       1,
		MaxExp:      100,
		HP:          100,
		MaxHP:       100,
		Mana:        50,
		MaxMana:     50,
		Attributes:  Attributes{1, 1, 1, 1, 1, 1},
		ArenaPoints: StartingArenaPoints,
	}
}

// Snapshot builds the battle view of the character.
// Equipment IDs unknown to src are treated as empty slots.
func (c *Character) Snapshot(src EquipmentSource) *Combatant {
	cb := &Combatant{
		Name:       c.Name,
		Attributes: c.Attributes.Normalized(),
		HP:         c.HP,
		MaxHP:      c.MaxHP,
		Mana:       c.Mana,
		MaxMana:    c.MaxMana,
	}
	if src == nil {
		return cb
	}
	for slot, id := range c.Equipped {
		if id == 0 {
			continue
		}
		eq, ok := src.Equipment(id)
		if !ok || eq.Slot != Slot(slot) {
			continue
		}
		cb.Equipment[slot] = eq
	}
	return cb
}

// AddExperience adds XP and levels up while Exp reaches MaxExp.
// Each level grants one attribute point and scales MaxExp by growthRate.
// Returns true if at least one level was gained.
func (c *Character) AddExperience(amount int64, growthRate float64) bool {
	if amount <= 0 {
		return false
	}
	if c.MaxExp <= 0 {
		c.MaxExp = 100
	}
	c.Exp += amount

	leveled := false
	for c.Exp >= c.MaxExp {
		c.Exp -= c.MaxExp
		c.Level++
		c.AttributePoints++
		next := int64(float64(c.MaxExp) * growthRate)
		if next < 1 {
			next = 1
		}
		c.MaxExp = next
		leveled = true
	}
	return leveled
}
