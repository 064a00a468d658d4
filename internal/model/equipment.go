package model

import "fmt"

// DamageType selects which secondary damage stat an attack scales from.
type DamageType int8

const (
	DamagePhysical DamageType = iota
	DamageMagical
)

// String returns the catalog name of the damage type.
func (t DamageType) String() string {
	switch t {
	case DamagePhysical:
		return "physical"
	case DamageMagical:
		return "magic"
	default:
		return "unknown"
	}
}

// ParseDamageType resolves a damage type name. Empty means physical.
func ParseDamageType(name string) (DamageType, error) {
	switch name {
	case "", "physical":
		return DamagePhysical, nil
	case "magic", "magical":
		return DamageMagical, nil
	default:
		return 0, fmt.Errorf("unknown damage type %q", name)
	}
}

// DamageStyle is the weapon style an armor piece can be weak against.
type DamageStyle int8

const (
	StyleNone DamageStyle = iota
	StyleSlash
	StylePierce
	StyleBlunt

	StyleCount = 4
)

// String returns the catalog name of the style.
func (s DamageStyle) String() string {
	switch s {
	case StyleNone:
		return "none"
	case StyleSlash:
		return "slash"
	case StylePierce:
		return "pierce"
	case StyleBlunt:
		return "blunt"
	default:
		return "unknown"
	}
}

// ParseDamageStyle resolves a style name. Empty means StyleNone.
func ParseDamageStyle(name string) (DamageStyle, error) {
	switch name {
	case "", "none":
		return StyleNone, nil
	case "slash":
		return StyleSlash, nil
	case "pierce":
		return StylePierce, nil
	case "blunt":
		return StyleBlunt, nil
	default:
		return 0, fmt.Errorf("unknown damage style %q", name)
	}
}

// AttackBlock is the offensive stat block of a weapon (hands slot only).
type AttackBlock struct {
	Type  DamageType
	Style DamageStyle
	Value int32
}

// DefenseBlock is the defensive stat block of an armor piece.
// Weakness is the style this piece amplifies damage from.
type DefenseBlock struct {
	Type     DamageType
	Weakness DamageStyle
	Value    int32
}

// Equipment is an equippable item definition.
// Attack and Defense are nil when the item carries no such block.
type Equipment struct {
	ID      int64
	Name    string
	Slot    Slot
	Bonuses Attributes
	Attack  *AttackBlock
	Defense *DefenseBlock
	Passive *PassiveSkill
}
