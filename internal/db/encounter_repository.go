package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlego/internal/model"
)

// EncounterRepository хранит итоги боёв.
type EncounterRepository struct {
	db *pgxpool.Pool
}

// NewEncounterRepository создаёт новый EncounterRepository.
func NewEncounterRepository(db *pgxpool.Pool) *EncounterRepository {
	return &EncounterRepository{db: db}
}

// CreateTx сохраняет итог боя в рамках транзакции.
// Лог и статистика пишутся в JSONB.
func (r *EncounterRepository) CreateTx(ctx context.Context, tx pgx.Tx, e *model.Encounter) error {
	logJSON, err := json.Marshal(e.Log)
	if err != nil {
		return fmt.Errorf("marshaling encounter log: %w", err)
	}
	statsJSON, err := json.Marshal(e.Stats)
	if err != nil {
		return fmt.Errorf("marshaling encounter stats: %w", err)
	}

	query := `
		INSERT INTO encounters (encounter_id, kind, attacker_id, defender_id, opponent,
		                        winner, seed, log, stats, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, query,
		e.ID, string(e.Kind), e.AttackerID, nullableID(e.DefenderID), e.Opponent,
		e.Winner, e.Seed, logJSON, statsJSON, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting encounter %s: %w", e.ID, err)
	}
	return nil
}

// ListByCharacter возвращает последние limit боёв персонажа (как атакующего или защитника),
// новые первыми.
func (r *EncounterRepository) ListByCharacter(ctx context.Context, characterID int64, limit int) ([]*model.Encounter, error) {
	query := `
		SELECT encounter_id, kind, attacker_id, defender_id, opponent,
		       winner, seed, log, stats, created_at
		FROM encounters
		WHERE attacker_id = $1 OR defender_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, characterID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying encounters of character %d: %w", characterID, err)
	}
	defer rows.Close()

	var out []*model.Encounter
	for rows.Next() {
		var e model.Encounter
		var kind string
		var defenderID *int64
		var logJSON, statsJSON []byte
		if err := rows.Scan(&e.ID, &kind, &e.AttackerID, &defenderID, &e.Opponent,
			&e.Winner, &e.Seed, &logJSON, &statsJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning encounter: %w", err)
		}
		e.Kind = model.EncounterKind(kind)
		if defenderID != nil {
			e.DefenderID = *defenderID
		}
		if err := json.Unmarshal(logJSON, &e.Log); err != nil {
			return nil, fmt.Errorf("unmarshaling log of encounter %s: %w", e.ID, err)
		}
		if err := json.Unmarshal(statsJSON, &e.Stats); err != nil {
			return nil, fmt.Errorf("unmarshaling stats of encounter %s: %w", e.ID, err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounter rows: %w", err)
	}
	return out, nil
}
