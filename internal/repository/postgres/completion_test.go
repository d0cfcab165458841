package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"letterlinks/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCompletion() *domain.Completion {
	return &domain.Completion{
		Score: 37,
		Date:  "20250615",
		Placed: []domain.PlacedTile{
			domain.NewPlacedTile(domain.LetterTile{ID: 2, Symbol: 'T'}, domain.Position{Row: 2, Col: 2}),
			domain.NewPlacedTile(domain.LetterTile{ID: 3, Symbol: 'O'}, domain.Position{Row: 2, Col: 3}),
		},
		Rack:        []domain.LetterTile{{ID: 0, Symbol: 'P'}, {ID: 18, Symbol: domain.Wildcard, Powerup: true}},
		CompletedAt: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
	}
}

func TestCompletionRepo_SaveCompletion(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCompletionRepo(db)
	c := sampleCompletion()

	mock.ExpectExec("INSERT INTO completions").
		WithArgs(int64(123), "20250615", 37, sqlmock.AnyArg(), c.CompletedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveCompletion(123, c)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepo_GetCompletion(t *testing.T) {
	snapshot, err := json.Marshal(sampleCompletion())
	require.NoError(t, err)

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:     "completion found",
			mockRows: sqlmock.NewRows([]string{"snapshot"}).AddRow(snapshot),
		},
		{
			name:        "not completed",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("database error"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewCompletionRepo(db)

			query := "SELECT snapshot FROM completions WHERE player_id = \\$1 AND date_key = \\$2"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(123), "20250615").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(123), "20250615").WillReturnRows(tt.mockRows)
			}

			c, err := repo.GetCompletion(123, "20250615")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, c)
			} else {
				require.NotNil(t, c)
				assert.Equal(t, 37, c.Score)
				assert.Len(t, c.Placed, 2)
				assert.Equal(t, domain.Position{Row: 2, Col: 3}, c.Placed[1].Position)
				assert.True(t, c.Rack[1].Powerup)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCompletionRepo_CleanOldCompletions(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCompletionRepo(db)

	mock.ExpectExec("DELETE FROM completions").
		WithArgs(60).
		WillReturnResult(sqlmock.NewResult(0, 10))

	err = repo.CleanOldCompletions(60)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
