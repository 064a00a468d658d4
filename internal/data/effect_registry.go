package data

import (
	"fmt"

	"github.com/udisondev/battlego/internal/model"
)

// effectFactory converts a raw payload into a typed effect.
type effectFactory func(target model.EffectTarget, payload map[string]any) (model.Effect, error)

// effectRegistry maps catalog effect type → factory.
var effectRegistry = map[string]effectFactory{
	"attribute_mod": newAttributeMod,
	"attr_mod":      newAttributeMod,
	"status_effect": newStatusEffect,
	"deal_damage":   newDealDamage,
}

// CreateEffect builds a typed effect from its catalog form.
// Returns model.ErrUnknownEffect or model.ErrMalformedEffect on bad input.
func CreateEffect(typ, target string, payload map[string]any) (model.Effect, error) {
	factory, ok := effectRegistry[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownEffect, typ)
	}
	tgt, err := model.ParseEffectTarget(target)
	if err != nil {
		return nil, err
	}
	return factory(tgt, payload)
}

func newAttributeMod(target model.EffectTarget, payload map[string]any) (model.Effect, error) {
	name, ok := payload["attribute"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: attribute_mod without attribute", model.ErrMalformedEffect)
	}
	attr, err := model.ParseAttribute(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedEffect, err)
	}
	value, _, err := intField(payload, "value", 0)
	if err != nil {
		return nil, err
	}
	duration, _, err := intField(payload, "duration", 1)
	if err != nil {
		return nil, err
	}
	return model.AttributeMod{Attribute: attr, Value: value, Duration: duration, Target: target}, nil
}

func newStatusEffect(target model.EffectTarget, payload map[string]any) (model.Effect, error) {
	status, ok := payload["status"].(string)
	if !ok || status == "" {
		return nil, fmt.Errorf("%w: status_effect without status", model.ErrMalformedEffect)
	}
	duration, _, err := intField(payload, "duration", 1)
	if err != nil {
		return nil, err
	}
	return model.StatusEffect{Status: status, Duration: duration, Target: target}, nil
}

func newDealDamage(target model.EffectTarget, payload map[string]any) (model.Effect, error) {
	amount, found, err := intField(payload, "amount", 0)
	if err != nil {
		return nil, err
	}
	if !found {
		// older catalogs name the field "damage"
		amount, found, err = intField(payload, "damage", 0)
		if err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: deal_damage without amount", model.ErrMalformedEffect)
	}
	return model.DealDamage{Amount: amount, Target: target}, nil
}

// intField reads an integer payload field. YAML decodes numbers as int or float64.
func intField(payload map[string]any, key string, def int32) (int32, bool, error) {
	v, ok := payload[key]
	if !ok || v == nil {
		return def, false, nil
	}
	switch n := v.(type) {
	case int:
		return int32(n), true, nil
	case int64:
		return int32(n), true, nil
	case uint64:
		return int32(n), true, nil
	case float64:
		return int32(n), true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s is %T, want number", model.ErrMalformedEffect, key, v)
	}
}
