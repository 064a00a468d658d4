package combat

import "github.com/udisondev/battlego/internal/model"

// State is the transient per-side battle state. It is created at battle start and
// discarded once the result is built.
type State struct {
	Combatant *model.Combatant
	HP        int32
	Mana      int32

	temp     model.Attributes
	tempSet  [model.AttributeCount]bool
	weakness [model.StyleCount]float64
	passives []*model.PassiveSkill
}

// NewState snapshots the working counters of c and precomputes its weakness profile.
func NewState(c *model.Combatant, cfg Config) *State {
	s := &State{
		Combatant: c,
		HP:        c.HP,
		Mana:      c.Mana,
		passives:  c.Passives(),
	}
	for _, slot := range model.ArmorSlots {
		eq := c.Equipped(slot)
		if eq == nil || eq.Defense == nil {
			continue
		}
		if w := eq.Defense.Weakness; w <= model.StyleNone || int(w) >= model.StyleCount {
			continue
		}
		s.weakness[eq.Defense.Weakness] += cfg.ArmorWeakness[slot]
	}
	return s
}

// TempAttr returns the accumulated passive delta for a, and whether one exists.
func (s *State) TempAttr(a model.Attribute) (int32, bool) {
	if !a.Valid() {
		return 0, false
	}
	return s.temp[a], s.tempSet[a]
}

// addTempAttr adds v to the temp entry of a. An absent entry starts from the
// combatant's base value of a.
func (s *State) addTempAttr(a model.Attribute, v int32) int32 {
	if !s.tempSet[a] {
		s.temp[a] = s.Combatant.Attributes.Get(a)
		s.tempSet[a] = true
	}
	s.temp[a] += v
	return s.temp[a]
}

// Weakness returns the damage amplification for an incoming attack style.
func (s *State) Weakness(style model.DamageStyle) float64 {
	if style <= model.StyleNone || int(style) >= model.StyleCount {
		return 0
	}
	return s.weakness[style]
}

// Defeated reports whether working HP is at or below zero.
func (s *State) Defeated() bool {
	return s.HP <= 0
}

// displayHP clamps working HP at 0.
func (s *State) displayHP() int32 {
	return max(0, s.HP)
}
