package data

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlego/internal/model"
)

// catalogFile is the YAML shape of a catalog.
type catalogFile struct {
	Equipment []equipmentFile `yaml:"equipment"`
	Monsters  []monsterFile   `yaml:"monsters"`
	Hunts     []huntFile      `yaml:"hunts"`
}

type equipmentFile struct {
	ID      int64            `yaml:"id"`
	Name    string           `yaml:"name"`
	Slot    string           `yaml:"slot"`
	Bonuses map[string]int32 `yaml:"bonuses"`
	Attack  *attackFile      `yaml:"attack"`
	Defense *defenseFile     `yaml:"defense"`
	Passive *passiveFile     `yaml:"passive"`
}

type attackFile struct {
	Type  string `yaml:"type"`
	Style string `yaml:"style"`
	Value int32  `yaml:"value"`
}

type defenseFile struct {
	Type     string `yaml:"type"`
	Weakness string `yaml:"weakness"`
	Value    int32  `yaml:"value"`
}

type passiveFile struct {
	Name    string       `yaml:"name"`
	Trigger string       `yaml:"trigger"`
	Cost    int32        `yaml:"cost"`
	Effects []effectFile `yaml:"effects"`
}

// effectFile keeps the loosely typed payload; it is converted once by buildEffect.
type effectFile struct {
	Type    string         `yaml:"type"`
	Target  string         `yaml:"target"`
	Payload map[string]any `yaml:"payload"`
}

type monsterFile struct {
	ID         int64            `yaml:"id"`
	Name       string           `yaml:"name"`
	Attributes map[string]int32 `yaml:"attributes"`
	HP         int32            `yaml:"hp"`
	Mana       int32            `yaml:"mana"`
	Equipment  []int64          `yaml:"equipment"`
}

type huntFile struct {
	ID       int64             `yaml:"id"`
	Name     string            `yaml:"name"`
	Monsters []huntMonsterFile `yaml:"monsters"`
}

type huntMonsterFile struct {
	Monster int64      `yaml:"monster"`
	Chance  int32      `yaml:"chance"`
	XP      int64      `yaml:"xp"`
	Gold    int64      `yaml:"gold"`
	Drops   []dropFile `yaml:"drops"`
}

type dropFile struct {
	Item   int64   `yaml:"item"`
	Chance float64 `yaml:"chance"`
}

func (f equipmentFile) build() (*model.Equipment, error) {
	slot, err := model.ParseSlot(f.Slot)
	if err != nil {
		return nil, err
	}
	eq := &model.Equipment{
		ID:      f.ID,
		Name:    f.Name,
		Slot:    slot,
		Bonuses: parseAttributeMap(f.Bonuses, "equipment", f.Name),
	}

	if f.Attack != nil {
		if slot != model.SlotHands {
			slog.Warn("attack block outside hands slot is ignored", "equipment", f.Name, "slot", slot)
		}
		typ, err := model.ParseDamageType(f.Attack.Type)
		if err != nil {
			return nil, fmt.Errorf("attack: %w", err)
		}
		style, err := model.ParseDamageStyle(f.Attack.Style)
		if err != nil {
			return nil, fmt.Errorf("attack: %w", err)
		}
		eq.Attack = &model.AttackBlock{Type: typ, Style: style, Value: f.Attack.Value}
	}

	if f.Defense != nil {
		typ, err := model.ParseDamageType(f.Defense.Type)
		if err != nil {
			return nil, fmt.Errorf("defense: %w", err)
		}
		weak, err := model.ParseDamageStyle(f.Defense.Weakness)
		if err != nil {
			return nil, fmt.Errorf("defense: %w", err)
		}
		eq.Defense = &model.DefenseBlock{Type: typ, Weakness: weak, Value: f.Defense.Value}
	}

	if f.Passive != nil {
		eq.Passive = f.Passive.build(f.Name)
	}
	return eq, nil
}

// build converts a passive definition. A passive with an unknown trigger is
// dropped; malformed effects are dropped one by one.
func (f passiveFile) build(owner string) *model.PassiveSkill {
	trigger, err := model.ParseTrigger(f.Trigger)
	if err != nil {
		slog.Warn("passive dropped", "equipment", owner, "passive", f.Name, "err", err)
		return nil
	}
	p := &model.PassiveSkill{
		Name:    f.Name,
		Trigger: trigger,
		Cost:    max(0, f.Cost),
		Effects: make([]model.Effect, 0, len(f.Effects)),
	}
	for i, ef := range f.Effects {
		eff, err := CreateEffect(ef.Type, ef.Target, ef.Payload)
		if err != nil {
			slog.Warn("passive effect dropped",
				"equipment", owner,
				"passive", f.Name,
				"index", i,
				"err", err)
			continue
		}
		p.Effects = append(p.Effects, eff)
	}
	return p
}

func (f monsterFile) build(cat *Catalog) (*Monster, error) {
	m := &Monster{
		ID:         f.ID,
		Name:       f.Name,
		Attributes: parseAttributeMap(f.Attributes, "monster", f.Name).Normalized(),
		HP:         f.HP,
		Mana:       f.Mana,
	}
	for _, id := range f.Equipment {
		eq, ok := cat.Equipment(id)
		if !ok {
			return nil, fmt.Errorf("unknown equipment %d", id)
		}
		m.Equipment = append(m.Equipment, eq)
	}
	return m, nil
}

func (f huntFile) build(cat *Catalog) (*Hunt, error) {
	h := &Hunt{ID: f.ID, Name: f.Name}
	for _, hm := range f.Monsters {
		m, ok := cat.Monster(hm.Monster)
		if !ok {
			return nil, fmt.Errorf("unknown monster %d", hm.Monster)
		}
		entry := HuntMonster{
			Monster: m,
			Chance:  hm.Chance,
			XP:      hm.XP,
			Gold:    hm.Gold,
		}
		for _, d := range hm.Drops {
			entry.Drops = append(entry.Drops, ItemDrop{ItemID: d.Item, Chance: d.Chance})
		}
		h.Monsters = append(h.Monsters, entry)
	}
	return h, nil
}

// parseAttributeMap converts named attribute values. Names outside the six
// primaries are logged and ignored.
func parseAttributeMap(in map[string]int32, kind, owner string) model.Attributes {
	var out model.Attributes
	for name, v := range in {
		a, err := model.ParseAttribute(name)
		if err != nil {
			slog.Warn("attribute ignored", kind, owner, "err", err)
			continue
		}
		out[a] += v
	}
	return out
}
