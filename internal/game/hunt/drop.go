package hunt

import "github.com/udisondev/battlego/internal/data"

// DropResult is one item granted after a hunt.
type DropResult struct {
	ItemID int64
	Count  int32
}

// chanceRoller is the random source drops are rolled with.
type chanceRoller interface {
	Float64() float64
}

// CalculateDrops rolls every drop of the monster entry independently.
// A drop lands when uniform[0, 100) <= chance; non-positive chances never drop.
func CalculateDrops(entry *data.HuntMonster, rng chanceRoller) []DropResult {
	if entry == nil || len(entry.Drops) == 0 {
		return nil
	}

	var results []DropResult
	for _, d := range entry.Drops {
		if d.Chance <= 0 {
			continue
		}
		if rng.Float64()*100.0 <= d.Chance {
			results = append(results, DropResult{ItemID: d.ItemID, Count: 1})
		}
	}
	return results
}
