package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"letterlinks/internal/domain"
)

// CompletionRepo implements repository.CompletionRepository
type CompletionRepo struct {
	db *sql.DB
}

// NewCompletionRepo creates a new completion repository
func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// SaveCompletion stores a submitted board.
// A second completion for the same day is ignored.
func (r *CompletionRepo) SaveCompletion(playerID int64, c *domain.Completion) error {
	snapshot, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode completion: %w", err)
	}
	query := `
		INSERT INTO completions (player_id, date_key, score, snapshot, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, date_key) DO NOTHING
	`
	_, err = r.db.Exec(query, playerID, c.Date, c.Score, snapshot, c.CompletedAt)
	return err
}

// GetCompletion returns the completion of a day, nil if the player has not finished it
func (r *CompletionRepo) GetCompletion(playerID int64, dateKey string) (*domain.Completion, error) {
	var raw []byte
	query := `
		SELECT snapshot
		FROM completions
		WHERE player_id = $1 AND date_key = $2
	`
	err := r.db.QueryRow(query, playerID, dateKey).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c domain.Completion
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	return &c, nil
}

// CleanOldCompletions deletes completions older than specified days
func (r *CompletionRepo) CleanOldCompletions(days int) error {
	query := `
		DELETE FROM completions
		WHERE completed_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
