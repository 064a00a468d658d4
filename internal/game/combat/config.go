package combat

import "github.com/udisondev/battlego/internal/model"

// MaxTurns is the default turn cap. A battle that reaches it ends in a draw.
const MaxTurns = 50

// Hit chance tuning (percent).
const (
	BaseHitChance = 65.0
	MinHitChance  = 5.0
	MaxHitChance  = 95.0
)

// DefenseFactor scales total defense before it is subtracted from damage.
const DefenseFactor = 0.5

// Config is the immutable tuning of one engine.
type Config struct {
	// MaxTurns caps the battle length. Values <= 0 or above the package MaxTurns
	// fall back to MaxTurns.
	MaxTurns int
	// ArmorWeakness is the per-slot weakness contribution of an armor piece whose
	// weakness style matches the incoming attack style. The hands entry is ignored.
	ArmorWeakness [model.SlotCount]float64
}

// DefaultConfig returns the standard tuning: 50 turns, chest 0.2, necklace 0.05,
// other armor slots 0.1.
func DefaultConfig() Config {
	var w [model.SlotCount]float64
	w[model.SlotHead] = 0.1
	w[model.SlotNecklace] = 0.05
	w[model.SlotShoulders] = 0.1
	w[model.SlotChest] = 0.2
	w[model.SlotFeet] = 0.1
	return Config{
		MaxTurns:      MaxTurns,
		ArmorWeakness: w,
	}
}

func (c Config) maxTurns() int {
	if c.MaxTurns <= 0 || c.MaxTurns > MaxTurns {
		return MaxTurns
	}
	return c.MaxTurns
}
