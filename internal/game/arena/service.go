package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
	"github.com/udisondev/battlego/internal/random"
)

var (
	// ErrSelfChallenge is returned when a character challenges itself.
	ErrSelfChallenge = errors.New("character cannot challenge itself")
	// ErrCharacterDefeated is returned when the challenger starts with 0 HP.
	ErrCharacterDefeated = errors.New("challenger has no hp left")
)

// Outcome is the result of one arena challenge.
type Outcome struct {
	Encounter   *model.Encounter
	Attacker    *model.Character
	Defender    *model.Character
	Winner      combat.Winner
	Log         []string
	AttackerGot int32 // rating change of the attacker
	DefenderGot int32 // rating change of the defender
}

// Service runs arena challenges.
type Service struct {
	store   store.Store
	catalog model.EquipmentSource
	battle  combat.Config
	newSeed func() (int64, error)
}

// NewService creates an arena service seeded from crypto/rand.
func NewService(st store.Store, cat model.EquipmentSource, battle combat.Config) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		battle:  battle,
		newSeed: random.NewSeed,
	}
}

// SetSeedSource replaces the seed generator (tests, replays).
func (s *Service) SetSeedSource(fn func() (int64, error)) {
	s.newSeed = fn
}

// Challenge battles attackerID against a full-health snapshot of defenderID.
//
// Both records are locked for the whole exchange, in ascending ID order, so
// concurrent challenges touching the same character serialize without
// deadlocking. A draw leaves ratings unchanged. Only the attacker's HP and mana
// are written back.
func (s *Service) Challenge(ctx context.Context, attackerID, defenderID int64) (*Outcome, error) {
	if attackerID == defenderID {
		return nil, ErrSelfChallenge
	}

	seed, err := s.newSeed()
	if err != nil {
		return nil, fmt.Errorf("seeding challenge: %w", err)
	}

	var out *Outcome
	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Tx) error {
		atk, def, err := lockPair(ctx, tx, attackerID, defenderID)
		if err != nil {
			return err
		}
		if atk.HP <= 0 {
			return fmt.Errorf("character %d: %w", attackerID, ErrCharacterDefeated)
		}

		atkSnap := atk.Snapshot(s.catalog)
		defSnap := def.Snapshot(s.catalog)
		defSnap.HP = defSnap.MaxHP
		defSnap.Mana = defSnap.MaxMana

		res := combat.NewEngine(s.battle, combat.NewRand(seed)).RunBattle(atkSnap, defSnap)

		atk.HP = atkSnap.HP
		atk.Mana = atkSnap.Mana

		o := &Outcome{
			Attacker: atk,
			Defender: def,
			Winner:   res.Winner,
			Log:      res.Log,
		}
		if res.Winner != combat.WinnerDraw {
			o.AttackerGot, o.DefenderGot = PointsDelta(atk.ArenaPoints, def.ArenaPoints, res.Winner == combat.WinnerAttacker)
			atk.ArenaPoints += o.AttackerGot
			def.ArenaPoints += o.DefenderGot
		}

		if err := tx.SaveCharacter(ctx, atk); err != nil {
			return fmt.Errorf("saving attacker %d: %w", atk.ID, err)
		}
		if err := tx.SaveCharacter(ctx, def); err != nil {
			return fmt.Errorf("saving defender %d: %w", def.ID, err)
		}

		enc := model.NewEncounter(model.EncounterArena, atk.ID, def.Name)
		enc.DefenderID = def.ID
		enc.Winner = string(res.Winner)
		enc.Seed = seed
		enc.Log = res.Log
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

	slog.Info("arena challenge finished",
		"attacker", attackerID,
		"defender", defenderID,
		"winner", out.Winner,
		"attacker_delta", out.AttackerGot,
		"defender_delta", out.DefenderGot)
	return out, nil
}

// lockPair locks both characters in ascending ID order.
func lockPair(ctx context.Context, tx store.Tx, attackerID, defenderID int64) (atk, def *model.Character, err error) {
	first, second := attackerID, defenderID
	if second < first {
		first, second = second, first
	}
	a, err := tx.LockCharacter(ctx, first)
	if err != nil {
		return nil, nil, fmt.Errorf("locking character %d: %w", first, err)
	}
	b, err := tx.LockCharacter(ctx, second)
	if err != nil {
		return nil, nil, fmt.Errorf("locking character %d: %w", second, err)
	}
	if first == attackerID {
		return a, b, nil
	}
	return b, a, nil
}
