package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"letterlinks/internal/domain"
)

// CompletionRepo implements repository.CompletionRepository on SQLite
type CompletionRepo struct {
	db *sql.DB
}

// NewCompletionRepo creates a new completion repository
func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// SaveCompletion stores a submitted board, ignoring a second one for the same day
func (r *CompletionRepo) SaveCompletion(playerID int64, c *domain.Completion) error {
	snapshot, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode completion: %w", err)
	}
	query := `
		INSERT OR IGNORE INTO completions (player_id, date_key, score, snapshot, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, playerID, c.Date, c.Score, string(snapshot), c.CompletedAt.Unix())
	return err
}

// GetCompletion returns the completion of a day, nil if the player has not finished it
func (r *CompletionRepo) GetCompletion(playerID int64, dateKey string) (*domain.Completion, error) {
	var raw string
	query := `SELECT snapshot FROM completions WHERE player_id = ? AND date_key = ?`
	err := r.db.QueryRow(query, playerID, dateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var c domain.Completion
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	return &c, nil
}

// CleanOldCompletions deletes completions older than specified days
func (r *CompletionRepo) CleanOldCompletions(days int) error {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()
	_, err := r.db.Exec(`DELETE FROM completions WHERE completed_at < ?`, cutoff)
	return err
}
