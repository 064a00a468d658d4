package testutil

import (
	"testing"

	"github.com/udisondev/battlego/internal/data"
	"github.com/udisondev/battlego/internal/model"
)

// Catalog IDs used by CatalogYAML.
const (
	ItemRustySword    int64 = 1
	ItemLeatherHelmet int64 = 2
	ItemSoulRing      int64 = 3
	ItemWolfPelt      int64 = 4

	MonsterWolf int64 = 100
	HuntForest  int64 = 10
	HuntEmpty   int64 = 11
)

// CatalogYAML — небольшой каталог для тестов сервисов.
// Волк всегда появляется в лесу и всегда роняет шкуру.
const CatalogYAML = `
equipment:
  - id: 1
    name: Rusty Sword
    slot: hands
    bonuses: {strength: 2}
    attack: {type: physical, style: slash, value: 5}
  - id: 2
    name: Leather Helmet
    slot: head
    defense: {type: physical, weakness: pierce, value: 2}
  - id: 3
    name: Soul Ring
    slot: necklace
    passive:
      name: Soul Drain
      trigger: on_attack
      cost: 5
      effects:
        - type: deal_damage
          target: enemy
          payload: {amount: 3}
  - id: 4
    name: Wolf Pelt
    slot: chest
    defense: {type: physical, value: 1}
monsters:
  - id: 100
    name: Wolf
    attributes: {strength: 3, dexterity: 3, constitution: 2}
    hp: 30
    mana: 0
hunts:
  - id: 10
    name: Forest
    monsters:
      - monster: 100
        chance: 100
        xp: 40
        gold: 15
        drops:
          - {item: 4, chance: 100}
  - id: 11
    name: Barren Field
`

// LoadTestCatalog парсит CatalogYAML.
func LoadTestCatalog(tb testing.TB) *data.Catalog {
	tb.Helper()

	cat, err := data.ParseCatalog([]byte(CatalogYAML))
	if err != nil {
		tb.Fatalf("parsing test catalog: %v", err)
	}
	return cat
}

// NewTestCharacter возвращает персонажа с атрибутами attr для всех шести характеристик.
func NewTestCharacter(name string, attr int32) *model.Character {
	c := model.NewCharacter(name)
	for i := range c.Attributes {
		c.Attributes[i] = attr
	}
	return c
}

// FixedSeed возвращает генератор сида, всегда отдающий seed.
func FixedSeed(seed int64) func() (int64, error) {
	return func() (int64, error) { return seed, nil }
}
