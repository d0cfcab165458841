package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"letterlinks/internal/domain"
)

// PlayerRepo implements repository.PlayerRepository
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a new player repository
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// EnsurePlayerExists creates player if not exists
func (r *PlayerRepo) EnsurePlayerExists(playerID int64) error {
	query := `
		INSERT INTO players (player_id)
		VALUES ($1)
		ON CONFLICT (player_id) DO NOTHING
	`
	_, err := r.db.Exec(query, playerID)
	return err
}

// LoadProgress returns the saved stats and achievements of a player
func (r *PlayerRepo) LoadProgress(playerID int64) (*domain.Progress, error) {
	var raw []byte
	query := `SELECT progress FROM players WHERE player_id = $1`
	err := r.db.QueryRow(query, playerID).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	progress := domain.NewProgress()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, progress); err != nil {
			return nil, fmt.Errorf("decode progress: %w", err)
		}
	}
	return progress, nil
}

// SaveProgress stores the progress snapshot, creating the player when needed
func (r *PlayerRepo) SaveProgress(playerID int64, progress *domain.Progress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	query := `
		INSERT INTO players (player_id, progress, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_id)
		DO UPDATE SET progress = EXCLUDED.progress, updated_at = NOW()
	`
	_, err = r.db.Exec(query, playerID, raw)
	return err
}
