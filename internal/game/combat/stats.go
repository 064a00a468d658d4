package combat

import "github.com/udisondev/battlego/internal/model"

// SecondaryStats are derived combat values.
type SecondaryStats struct {
	PhysicalDamage float64
	MagicalDamage  float64
	Accuracy       float64
	CritChance     float64 // percent, capped at 50
	CritDamage     float64 // multiplier
	TotalHP        float64
	TotalMana      float64
	Defense        float64 // before armor
}

// MaxCritChance caps CritChance (percent).
const MaxCritChance = 50.0

// FinalAttributes folds base attributes, equipment bonuses and passive deltas.
func FinalAttributes(s *State) model.Attributes {
	final := s.Combatant.Attributes
	for _, eq := range s.Combatant.Equipment {
		if eq == nil {
			continue
		}
		final = final.Add(eq.Bonuses)
	}
	return final.Add(s.temp)
}

// ComputeSecondary derives secondary stats from final primary attributes.
func ComputeSecondary(attrs model.Attributes) SecondaryStats {
	str := float64(attrs[model.AttrStrength])
	dex := float64(attrs[model.AttrDexterity])
	arc := float64(attrs[model.AttrArcane])
	con := float64(attrs[model.AttrConstitution])
	cou := float64(attrs[model.AttrCourage])
	luck := float64(attrs[model.AttrLuck])

	return SecondaryStats{
		PhysicalDamage: str + cou*0.1,
		MagicalDamage:  arc + cou*0.1,
		Accuracy:       dex + cou*0.1,
		CritChance:     max(0, min(luck*0.5, MaxCritChance)),
		CritDamage:     1 + dex*0.1 + cou*0.01 + arc*0.01,
		TotalHP:        con * 10,
		TotalMana:      arc * 10,
		Defense:        con,
	}
}
