package model

import "fmt"

// Trigger is a battle event point that activates matching passives.
type Trigger int8

const (
	TriggerTurnStart Trigger = iota
	TriggerAttack
	TriggerDefend
	TriggerHit
	TriggerReceiveDamage
)

// String returns the catalog name of the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerTurnStart:
		return "on_turn_start"
	case TriggerAttack:
		return "on_attack"
	case TriggerDefend:
		return "on_defend"
	case TriggerHit:
		return "on_hit"
	case TriggerReceiveDamage:
		return "on_receive_damage"
	default:
		return fmt.Sprintf("Trigger(%d)", t)
	}
}

// ParseTrigger resolves a trigger by catalog name.
func ParseTrigger(name string) (Trigger, error) {
	switch name {
	case "on_turn_start":
		return TriggerTurnStart, nil
	case "on_attack":
		return TriggerAttack, nil
	case "on_defend":
		return TriggerDefend, nil
	case "on_hit":
		return TriggerHit, nil
	case "on_receive_damage":
		return TriggerReceiveDamage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrigger, name)
	}
}

// EffectTarget is relative to the owner of the passive.
type EffectTarget int8

const (
	TargetSelf EffectTarget = iota
	TargetEnemy
)

// String returns "self" or "enemy".
func (t EffectTarget) String() string {
	if t == TargetEnemy {
		return "enemy"
	}
	return "self"
}

// ParseEffectTarget resolves a target name. Empty means self.
func ParseEffectTarget(name string) (EffectTarget, error) {
	switch name {
	case "", "self":
		return TargetSelf, nil
	case "enemy":
		return TargetEnemy, nil
	default:
		return 0, fmt.Errorf("%w: unknown target %q", ErrMalformedEffect, name)
	}
}

// Effect is one step of a passive skill. The set of implementations is closed:
// AttributeMod, StatusEffect and DealDamage.
type Effect interface {
	// EffectTarget returns who the effect lands on.
	EffectTarget() EffectTarget
	isEffect()
}

// AttributeMod adds Value to a primary attribute for the rest of the battle.
// Duration is informational only.
type AttributeMod struct {
	Attribute Attribute
	Value     int32
	Duration  int32
	Target    EffectTarget
}

// StatusEffect names a status. It has no combat mechanics.
type StatusEffect struct {
	Status   string
	Duration int32
	Target   EffectTarget
}

// DealDamage removes Amount working HP from the target.
type DealDamage struct {
	Amount int32
	Target EffectTarget
}

func (e AttributeMod) EffectTarget() EffectTarget { return e.Target }
func (e StatusEffect) EffectTarget() EffectTarget { return e.Target }
func (e DealDamage) EffectTarget() EffectTarget   { return e.Target }

func (AttributeMod) isEffect() {}
func (StatusEffect) isEffect() {}
func (DealDamage) isEffect()   {}

// PassiveSkill is an equipment-granted, trigger-activated effect bundle.
type PassiveSkill struct {
	Name    string
	Trigger Trigger
	Cost    int32
	Effects []Effect
}
