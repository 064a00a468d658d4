package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/battlego/internal/model"
)

// HitChance returns the attacker's chance to hit, in percent.
// Formula: 65 + 2*(attacker accuracy - defender dexterity), clamped [5, 95].
// Both values come from final attributes, so equipment and passive deltas count.
func HitChance(attacker, defender *State) float64 {
	atk := ComputeSecondary(FinalAttributes(attacker))
	defDex := float64(FinalAttributes(defender)[model.AttrDexterity])

	chance := BaseHitChance + 2.0*(atk.Accuracy-defDex)
	if chance < MinHitChance {
		chance = MinHitChance
	}
	if chance > MaxHitChance {
		chance = MaxHitChance
	}
	return chance
}

// ArmorDefense sums the defense values of equipped armor (every slot but hands).
// Pieces without a defense block contribute nothing.
func ArmorDefense(c *model.Combatant) float64 {
	total := 0.0
	for _, slot := range model.ArmorSlots {
		eq := c.Equipped(slot)
		if eq == nil || eq.Defense == nil {
			continue
		}
		total += float64(eq.Defense.Value)
	}
	return total
}

// WeaponAttack returns the hands-slot weapon value, or 0 when unarmed.
func WeaponAttack(c *model.Combatant) float64 {
	w := c.Weapon()
	if w == nil {
		return 0
	}
	return float64(w.Value)
}

// attackProfile returns the damage type and style a combatant attacks with.
// Unarmed combatants deal physical damage with no style.
func attackProfile(c *model.Combatant) (model.DamageType, model.DamageStyle) {
	w := c.Weapon()
	if w == nil {
		return model.DamagePhysical, model.StyleNone
	}
	return w.Type, w.Style
}

// ResolveDamage computes the damage of one landed attack.
//
// Pipeline:
//  1. base = physical or magical damage of the attacker, + weapon value
//  2. defense = (defender constitution + armor values) * 0.5
//  3. raw = max(1, base - defense + uniform[-1, 1])
//  4. crit roll: raw *= crit damage
//  5. weakness for the attack style: raw *= 1 + weakness
//  6. damage = max(1, round(raw))
//
// Returns damage (minimum 1) and whether the hit was critical.
func ResolveDamage(attacker, defender *State, damageType model.DamageType, style model.DamageStyle, rng Rand) (int32, bool) {
	atk := ComputeSecondary(FinalAttributes(attacker))
	def := ComputeSecondary(FinalAttributes(defender))

	base := atk.PhysicalDamage
	if damageType == model.DamageMagical {
		base = atk.MagicalDamage
	}
	base += WeaponAttack(attacker.Combatant)

	defense := (def.Defense + ArmorDefense(defender.Combatant)) * DefenseFactor

	variation := rng.Float64()*2.0 - 1.0
	raw := math.Max(1.0, base-defense+variation)

	slog.Debug("damage base",
		"attacker", attacker.Combatant.Name,
		"type", damageType,
		"base", base,
		"defense", defense,
		"variation", variation,
		"raw", raw)

	crit := false
	if rng.Float64() < atk.CritChance/100.0 {
		crit = true
		raw *= atk.CritDamage
	}

	if w := defender.Weakness(style); w > 0 {
		raw *= 1 + w
		slog.Debug("weakness applied", "style", style, "weakness", w, "raw", raw)
	}

	// x.5 rounds to even.
	dmg := int32(math.Max(1, math.RoundToEven(raw)))
	return dmg, crit
}
