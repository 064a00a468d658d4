package model

// Combatant is a battle participant snapshot (player character or monster).
// The battle engine reads Attributes and Equipment and only ever writes HP and Mana.
type Combatant struct {
	Name       string
	Attributes Attributes
	HP         int32
	MaxHP      int32
	Mana       int32
	MaxMana    int32
	Equipment  [SlotCount]*Equipment
}

// Equipped returns the item in slot s, or nil.
func (c *Combatant) Equipped(s Slot) *Equipment {
	if s < 0 || int(s) >= SlotCount {
		return nil
	}
	return c.Equipment[s]
}

// Weapon returns the attack block of the hands-slot item, or nil.
func (c *Combatant) Weapon() *AttackBlock {
	eq := c.Equipped(SlotHands)
	if eq == nil {
		return nil
	}
	return eq.Attack
}

// Passives returns equipped passive skills in slot order.
func (c *Combatant) Passives() []*PassiveSkill {
	var out []*PassiveSkill
	for _, eq := range c.Equipment {
		if eq != nil && eq.Passive != nil {
			out = append(out, eq.Passive)
		}
	}
	return out
}

// Equip places eq in its own slot, replacing what was there.
func (c *Combatant) Equip(eq *Equipment) {
	if eq == nil || eq.Slot < 0 || int(eq.Slot) >= SlotCount {
		return
	}
	c.Equipment[eq.Slot] = eq
}
