package model

import "fmt"

// Slot is an equipment slot. Order defines the stable passive evaluation order.
type Slot int8

const (
	SlotHead Slot = iota
	SlotNecklace
	SlotShoulders
	SlotChest
	SlotHands
	SlotFeet

	SlotCount = 6
)

var slotNames = [SlotCount]string{
	"head",
	"necklace",
	"shoulders",
	"chest",
	"hands",
	"feet",
}

// ArmorSlots lists every slot that contributes defense and weakness (all but hands).
var ArmorSlots = [...]Slot{SlotHead, SlotNecklace, SlotShoulders, SlotChest, SlotFeet}

// String returns the catalog name of the slot.
func (s Slot) String() string {
	if s < 0 || int(s) >= SlotCount {
		return fmt.Sprintf("Slot(%d)", s)
	}
	return slotNames[s]
}

// IsArmor reports whether the slot holds armor rather than a weapon.
func (s Slot) IsArmor() bool {
	return s != SlotHands && s >= 0 && int(s) < SlotCount
}

// ParseSlot resolves a slot by catalog name.
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}
