package combat

import (
	"log/slog"

	"github.com/udisondev/battlego/internal/model"
)

// ApplyEffects runs every passive of source matching trigger.
//
// Passives are evaluated in equip-slot order. A passive whose cost exceeds the
// source's working mana is skipped with a log line; otherwise its cost is paid
// up front and its effects are applied in order. A failure inside one passive is
// recovered and the next passive still runs.
func ApplyEffects(passives []*model.PassiveSkill, trigger model.Trigger, source, target *State, log *Log) {
	for _, p := range passives {
		if p == nil || p.Trigger != trigger {
			continue
		}
		applyPassive(p, source, target, log)
	}
}

func applyPassive(p *model.PassiveSkill, source, target *State, log *Log) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("passive failed, skipped",
				"passive", p.Name,
				"owner", source.Combatant.Name,
				"panic", r)
		}
	}()

	if len(p.Effects) == 0 {
		return
	}

	if p.Cost > 0 {
		if p.Cost > source.Mana {
			log.Addf("Passive %s could not activate: not enough mana.", p.Name)
			return
		}
		source.Mana -= p.Cost
	}

	for _, eff := range p.Effects {
		applyEffect(p, eff, source, target, log)
	}
}

func applyEffect(p *model.PassiveSkill, eff model.Effect, source, target *State, log *Log) {
	dst := source
	if eff.EffectTarget() == model.TargetEnemy {
		dst = target
	}

	switch e := eff.(type) {
	case model.AttributeMod:
		if !e.Attribute.Valid() {
			slog.Warn("attribute mod without attribute, skipped", "passive", p.Name)
			return
		}
		total := dst.addTempAttr(e.Attribute, e.Value)
		log.Addf("Passive %s: applied %+d %s to %s for %d turn(s).",
			p.Name, e.Value, e.Attribute, dst.Combatant.Name, e.Duration)
		slog.Debug("attribute mod", "passive", p.Name, "attr", e.Attribute, "temp", total)

	case model.StatusEffect:
		// Statuses have no mechanics yet; they are only reported.
		log.Addf("Passive %s: applied status %s to %s for %d turn(s).",
			p.Name, e.Status, dst.Combatant.Name, e.Duration)

	case model.DealDamage:
		dst.HP -= e.Amount
		log.Addf("Passive %s: dealt %d damage to %s.", p.Name, e.Amount, dst.Combatant.Name)

	default:
		slog.Warn("unknown effect, skipped", "passive", p.Name, "effect", eff)
	}
}
