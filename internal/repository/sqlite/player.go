package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"letterlinks/internal/domain"
)

// PlayerRepo implements repository.PlayerRepository on SQLite
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a new player repository
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// EnsurePlayerExists creates player if not exists
func (r *PlayerRepo) EnsurePlayerExists(playerID int64) error {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO players (player_id) VALUES (?)`, playerID)
	return err
}

// LoadProgress returns the saved stats and achievements of a player
func (r *PlayerRepo) LoadProgress(playerID int64) (*domain.Progress, error) {
	var raw string
	err := r.db.QueryRow(`SELECT progress FROM players WHERE player_id = ?`, playerID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	progress := domain.NewProgress()
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), progress); err != nil {
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
		VALUES (?, ?, ?)
		ON CONFLICT (player_id)
		DO UPDATE SET progress = excluded.progress, updated_at = excluded.updated_at
	`
	_, err = r.db.Exec(query, playerID, string(raw), time.Now().Unix())
	return err
}
