// Package hunt runs a character against a monster of a hunting ground and
// applies the rewards.
package hunt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/battlego/internal/data"
	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
	"github.com/udisondev/battlego/internal/random"
)

var (
	// ErrUnknownHunt is returned for a hunt ID missing from the catalog.
	ErrUnknownHunt = errors.New("unknown hunt")
	// ErrEmptyHunt is returned when a hunt has no monster to encounter.
	ErrEmptyHunt = errors.New("hunt has no monsters")
	// ErrCharacterDefeated is returned when the character starts with 0 HP.
	ErrCharacterDefeated = errors.New("character has no hp left")
)

// Catalog is the catalog view the hunt workflow needs.
type Catalog interface {
	model.EquipmentSource
	Hunt(id int64) (*data.Hunt, bool)
}

// Config tunes the hunt workflow.
type Config struct {
	Battle combat.Config
	// LevelGrowthRate multiplies the XP needed for the next level on each level-up.
	LevelGrowthRate float64
	// RewardOnDefeat grants xp, gold and drops even when the character does not win.
	RewardOnDefeat bool
}

// Outcome is the result of one hunt.
type Outcome struct {
	Encounter *model.Encounter
	Character *model.Character
	Monster   string
	Winner    combat.Winner
	Log       []string
	XP        int64
	Gold      int64
	Drops     []DropResult
	LeveledUp bool
}

// Service runs hunts.
type Service struct {
	store   store.Store
	catalog Catalog
	cfg     Config
	newSeed func() (int64, error)
}

// NewService creates a hunt service seeded from crypto/rand.
func NewService(st store.Store, cat Catalog, cfg Config) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		cfg:     cfg,
		newSeed: random.NewSeed,
	}
}

// SetSeedSource replaces the seed generator (tests, replays).
func (s *Service) SetSeedSource(fn func() (int64, error)) {
	s.newSeed = fn
}

// Hunt picks a monster of huntID, battles it with the character and persists
// HP, mana, xp, gold, drops and the encounter in one transaction.
func (s *Service) Hunt(ctx context.Context, characterID, huntID int64) (*Outcome, error) {
	h, ok := s.catalog.Hunt(huntID)
	if !ok {
		return nil, fmt.Errorf("hunt %d: %w", huntID, ErrUnknownHunt)
	}

	seed, err := s.newSeed()
	if err != nil {
		return nil, fmt.Errorf("seeding hunt: %w", err)
	}
	rng := combat.NewRand(seed)

	entry := h.PickMonster(rng)
	if entry == nil {
		return nil, fmt.Errorf("hunt %d: %w", huntID, ErrEmptyHunt)
	}

	var out *Outcome
	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Tx) error {
		c, err := tx.LockCharacter(ctx, characterID)
		if err != nil {
			return fmt.Errorf("locking character %d: %w", characterID, err)
		}
		if c.HP <= 0 {
			return fmt.Errorf("character %d: %w", characterID, ErrCharacterDefeated)
		}

		snap := c.Snapshot(s.catalog)
		monster := entry.Monster.Combatant()
		res := combat.NewEngine(s.cfg.Battle, rng).RunBattle(snap, monster)

		c.HP = snap.HP
		c.Mana = snap.Mana

		o := &Outcome{
			Character: c,
			Monster:   monster.Name,
			Winner:    res.Winner,
			Log:       append([]string(nil), res.Log...),
		}

		if res.Winner == combat.WinnerAttacker || s.cfg.RewardOnDefeat {
			if err := s.grantRewards(ctx, tx, c, entry, rng, o); err != nil {
				return err
			}
		}

		if err := tx.SaveCharacter(ctx, c); err != nil {
			return fmt.Errorf("saving character %d: %w", c.ID, err)
		}

		enc := model.NewEncounter(model.EncounterHunt, c.ID, monster.Name)
		enc.Winner = string(res.Winner)
		enc.Seed = seed
		enc.Log = o.Log
		enc.Stats = res.Stats
		if err := tx.RecordEncounter(ctx, enc); err != nil {
			return fmt.Errorf("recording encounter: %w", err)
		}
		o.Encounter = enc

		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("hunt finished",
		"character", characterID,
		"hunt", h.Name,
		"monster", out.Monster,
		"winner", out.Winner,
		"xp", out.XP,
		"gold", out.Gold,
		"drops", len(out.Drops))
	return out, nil
}

func (s *Service) grantRewards(ctx context.Context, tx store.Tx, c *model.Character, entry *data.HuntMonster, rng combat.Rand, o *Outcome) error {
	o.XP = entry.XP
	o.Gold = entry.Gold
	o.LeveledUp = c.AddExperience(entry.XP, s.cfg.LevelGrowthRate)
	c.Gold += entry.Gold

	reward := fmt.Sprintf("You earned %d gold and %d experience.", entry.Gold, entry.XP)
	if o.LeveledUp {
		reward += " You leveled up!"
	}
	o.Log = append(o.Log, reward)

	o.Drops = CalculateDrops(entry, rng)
	names := make([]string, 0, len(o.Drops))
	for _, d := range o.Drops {
		if err := tx.AddInventoryItem(ctx, c.ID, d.ItemID, d.Count); err != nil {
			return fmt.Errorf("adding drop %d: %w", d.ItemID, err)
		}
		names = append(names, s.itemName(d.ItemID))
	}
	if len(names) == 0 {
		o.Log = append(o.Log, "You found nothing.")
	} else {
		o.Log = append(o.Log, "You found "+strings.Join(names, ", ")+".")
	}
	return nil
}

func (s *Service) itemName(id int64) string {
	if eq, ok := s.catalog.Equipment(id); ok && eq.Name != "" {
		return eq.Name
	}
	return fmt.Sprintf("item #%d", id)
}
