package combat

import "github.com/udisondev/battlego/internal/model"

// fixedRand always returns v.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// seqRand replays vals in a loop.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// attrs builds attributes in enum order: str, dex, arc, con, cou, luck.
func attrs(str, dex, arc, con, cou, luck int32) model.Attributes {
	return model.Attributes{str, dex, arc, con, cou, luck}
}

func newCombatant(name string, a model.Attributes, hp, mana int32, eqs ...*model.Equipment) *model.Combatant {
	c := &model.Combatant{
		Name:       name,
		Attributes: a,
		HP:         hp,
		MaxHP:      hp,
		Mana:       mana,
		MaxMana:    mana,
	}
	for _, eq := range eqs {
		c.Equip(eq)
	}
	return c
}

// hero is the reference attacker: strength 10, courage 5, dexterity 5, luck 2.
func hero() *model.Combatant {
	return newCombatant("Hero", attrs(10, 5, 0, 1, 5, 2), 100, 0)
}

// dummy has constitution 5, dexterity 1 and no armor.
func dummy(hp int32) *model.Combatant {
	return newCombatant("Dummy", attrs(1, 1, 1, 5, 1, 1), hp, 0)
}

func necklace(p *model.PassiveSkill) *model.Equipment {
	return &model.Equipment{ID: 90, Name: "Charm", Slot: model.SlotNecklace, Passive: p}
}
