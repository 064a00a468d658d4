package model

import (
	"time"

	"github.com/google/uuid"
)

// BattleStats are aggregate counters of one battle, seen from the attacker side.
// Enemy* counters track the defender side's own attacks.
type BattleStats struct {
	Hits             int32 `json:"hits"`
	Misses           int32 `json:"misses"`
	Crits            int32 `json:"crits"`
	TotalDamageDealt int32 `json:"total_damage_dealt"`
	TotalDamageTaken int32 `json:"total_damage_taken"`
	TurnsTaken       int32 `json:"turns_taken"`
	EnemyHits        int32 `json:"enemy_hits"`
	EnemyMisses      int32 `json:"enemy_misses"`
	EnemyCrits       int32 `json:"enemy_crits"`
}

// EncounterKind distinguishes hunt battles from arena challenges.
type EncounterKind string

const (
	EncounterHunt  EncounterKind = "hunt"
	EncounterArena EncounterKind = "arena"
)

// Encounter is the persisted summary of a finished battle.
type Encounter struct {
	ID         uuid.UUID
	Kind       EncounterKind
	AttackerID int64
	DefenderID int64 // 0 for monsters
	Opponent   string
	Winner     string
	Seed       int64
	Log        []string
	Stats      BattleStats
	CreatedAt  time.Time
}

// NewEncounter returns an encounter with a fresh ID and creation time.
func NewEncounter(kind EncounterKind, attackerID int64, opponent string) *Encounter {
	return &Encounter{
		ID:         uuid.New(),
		Kind:       kind,
		AttackerID: attackerID,
		Opponent:   opponent,
		CreatedAt:  time.Now().UTC(),
	}
}
