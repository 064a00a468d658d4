package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlego/internal/model"
)

const testCatalog = `
equipment:
  - id: 1
    name: Sword
    slot: hands
    bonuses: {strength: 2, charisma: 5}
    attack: {type: physical, style: slash, value: 4}
  - id: 2
    name: Cursed Amulet
    slot: necklace
    passive:
      name: Drain
      trigger: on_attack
      cost: 3
      effects:
        - type: attr_mod
          target: enemy
          payload: {attribute: luck, value: -2, duration: 2}
        - type: deal_damage
          target: enemy
          payload: {damage: 4}
        - type: teleport
          payload: {}
        - type: attribute_mod
          payload: {value: 1}
  - id: 3
    name: Plate
    slot: chest
    defense: {type: physical, weakness: blunt, value: 5}
monsters:
  - id: 10
    name: Orc
    attributes: {strength: 6, constitution: 4}
    hp: 60
    mana: 5
    equipment: [1, 3]
hunts:
  - id: 100
    name: Plains
    monsters:
      - monster: 10
        chance: 80
        xp: 30
        gold: 9
        drops:
          - {item: 3, chance: 12.5}
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	e, m, h := cat.Counts()
	assert.Equal(t, 3, e)
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, h)

	sword, ok := cat.Equipment(1)
	require.True(t, ok)
	assert.Equal(t, model.SlotHands, sword.Slot)
	assert.Equal(t, int32(2), sword.Bonuses[model.AttrStrength])
	require.NotNil(t, sword.Attack)
	assert.Equal(t, model.StyleSlash, sword.Attack.Style)
	assert.Equal(t, int32(4), sword.Attack.Value)

	plate, _ := cat.Equipment(3)
	require.NotNil(t, plate.Defense)
	assert.Equal(t, model.StyleBlunt, plate.Defense.Weakness)

	orc, ok := cat.Monster(10)
	require.True(t, ok)
	assert.Equal(t, int32(6), orc.Attributes[model.AttrStrength])
	assert.Equal(t, int32(1), orc.Attributes[model.AttrLuck], "missing attributes default to 1")

	cb := orc.Combatant()
	assert.Equal(t, int32(60), cb.HP)
	assert.Equal(t, int32(60), cb.MaxHP)
	assert.Same(t, sword, cb.Equipped(model.SlotHands))
	assert.Same(t, plate, cb.Equipped(model.SlotChest))

	plains, ok := cat.Hunt(100)
	require.True(t, ok)
	require.Len(t, plains.Monsters, 1)
	assert.Same(t, orc, plains.Monsters[0].Monster)
	assert.Equal(t, []ItemDrop{{ItemID: 3, Chance: 12.5}}, plains.Monsters[0].Drops)
}

func TestParseCatalog_MalformedEffectsDropped(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	amulet, ok := cat.Equipment(2)
	require.True(t, ok)
	require.NotNil(t, amulet.Passive)
	assert.Equal(t, model.TriggerAttack, amulet.Passive.Trigger)
	assert.Equal(t, int32(3), amulet.Passive.Cost)
	assert.Equal(t, []model.Effect{
		model.AttributeMod{Attribute: model.AttrLuck, Value: -2, Duration: 2, Target: model.TargetEnemy},
		model.DealDamage{Amount: 4, Target: model.TargetEnemy},
	}, amulet.Passive.Effects)
}

func TestParseCatalog_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "duplicate equipment",
			yaml:    "equipment:\n  - {id: 1, name: A, slot: head}\n  - {id: 1, name: B, slot: feet}\n",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "unknown slot",
			yaml:    "equipment:\n  - {id: 1, name: A, slot: tail}\n",
			wantErr: model.ErrUnknownSlot,
		},
		{
			name: "dangling equipment",
			yaml: "monsters:\n  - {id: 1, name: Rat, hp: 5, equipment: [9]}\n",
		},
		{
			name: "dangling monster",
			yaml: "hunts:\n  - id: 1\n    name: Cellar\n    monsters:\n      - {monster: 9, chance: 1}\n",
		},
		{
			name: "not yaml",
			yaml: "equipment: [",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseCatalog error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCatalog_SampleFile(t *testing.T) {
	cat, err := LoadCatalog("../../config/catalog.yaml")
	require.NoError(t, err)

	e, m, h := cat.Counts()
	assert.Positive(t, e)
	assert.Positive(t, m)
	assert.Positive(t, h)

	for _, id := range []int64{1, 2} {
		hunt, ok := cat.Hunt(id)
		require.True(t, ok, "hunt %d", id)
		assert.NotEmpty(t, hunt.Monsters)
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	_, err := LoadCatalog("does/not/exist.yaml")
	assert.Error(t, err)
}

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

func TestHunt_PickMonster(t *testing.T) {
	a := &Monster{ID: 1, Name: "A"}
	b := &Monster{ID: 2, Name: "B"}
	c := &Monster{ID: 3, Name: "C"}
	h := &Hunt{Monsters: []HuntMonster{
		{Monster: a, Chance: 70},
		{Monster: c, Chance: 0},
		{Monster: b, Chance: 30},
	}}

	tests := []struct {
		roll float64
		want *Monster
	}{
		{0, a},
		{0.69, a},
		{0.7, b},
		{0.999999, b},
	}
	for _, tt := range tests {
		got := h.PickMonster(fixedRoll(tt.roll))
		if got == nil || got.Monster != tt.want {
			t.Errorf("PickMonster(%v) = %v; want %s", tt.roll, got, tt.want.Name)
		}
	}

	empty := &Hunt{Monsters: []HuntMonster{{Monster: a, Chance: 0}}}
	if got := empty.PickMonster(fixedRoll(0.5)); got != nil {
		t.Errorf("PickMonster(no weights) = %v; want nil", got)
	}
}
