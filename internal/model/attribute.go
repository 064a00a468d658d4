package model

import "fmt"

// Attribute is one of the six primary attributes.
type Attribute int8

const (
	AttrStrength Attribute = iota
	AttrDexterity
	AttrArcane
	AttrConstitution
	AttrCourage
	AttrLuck

	AttributeCount = 6
)

var attributeNames = [AttributeCount]string{
	"strength",
	"dexterity",
	"arcane",
	"constitution",
	"courage",
	"luck",
}

// String returns the lowercase attribute name used in catalogs and logs.
func (a Attribute) String() string {
	if a < 0 || int(a) >= AttributeCount {
		return fmt.Sprintf("Attribute(%d)", a)
	}
	return attributeNames[a]
}

// Valid reports whether a is a known attribute.
func (a Attribute) Valid() bool {
	return a >= 0 && int(a) < AttributeCount
}

// ParseAttribute resolves an attribute by its catalog name.
func ParseAttribute(name string) (Attribute, error) {
	for i, n := range attributeNames {
		if n == name {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Attributes holds a value per primary attribute, indexed by Attribute.
type Attributes [AttributeCount]int32

// Get returns the value of attribute a (0 for an invalid attribute).
func (as Attributes) Get(a Attribute) int32 {
	if !a.Valid() {
		return 0
	}
	return as[a]
}

// Add returns as + other, attribute by attribute.
func (as Attributes) Add(other Attributes) Attributes {
	for i := range as {
		as[i] += other[i]
	}
	return as
}

// Normalized returns a copy where every attribute below 1 is raised to 1.
// Primary attributes of a combatant are never lower than 1.
func (as Attributes) Normalized() Attributes {
	for i := range as {
		if as[i] < 1 {
			as[i] = 1
		}
	}
	return as
}
