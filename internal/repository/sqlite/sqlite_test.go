package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"letterlinks/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS players").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, initSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS players").
		WillReturnError(errors.New("disk I/O error"))

	err = initSchema(db)
	assert.ErrorContains(t, err, "failed to create schema")
}

func TestPlayerRepo_EnsurePlayerExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT OR IGNORE INTO players").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, NewPlayerRepo(db).EnsurePlayerExists(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRepo_LoadProgress(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:     "progress found",
			mockRows: sqlmock.NewRows([]string{"progress"}).AddRow(`{"stats":{"highestScore":120}}`),
		},
		{
			name:        "player not exists",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:          "broken json",
			mockRows:      sqlmock.NewRows([]string{"progress"}).AddRow(`not json`),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			query := "SELECT progress FROM players WHERE player_id = \\?"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnRows(tt.mockRows)
			}

			progress, err := NewPlayerRepo(db).LoadProgress(7)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, progress)
			} else {
				require.NotNil(t, progress)
				assert.Equal(t, 120, progress.Stats.HighestScore)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlayerRepo_SaveProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	progress := domain.NewProgress()
	progress.Unlock("longWord")
	raw, err := json.Marshal(progress)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO players").
		WithArgs(int64(7), string(raw), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, NewPlayerRepo(db).SaveProgress(7, progress))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepo_SaveAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCompletionRepo(db)
	c := &domain.Completion{
		Score:       12,
		Date:        "20250615",
		Placed:      []domain.PlacedTile{domain.NewPlacedTile(domain.LetterTile{ID: 1, Symbol: 'A'}, domain.Center())},
		CompletedAt: time.Unix(1750000000, 0).UTC(),
	}
	snapshot, err := json.Marshal(c)
	require.NoError(t, err)

	mock.ExpectExec("INSERT OR IGNORE INTO completions").
		WithArgs(int64(7), "20250615", 12, string(snapshot), int64(1750000000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT snapshot FROM completions").
		WithArgs(int64(7), "20250615").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).AddRow(string(snapshot)))

	require.NoError(t, repo.SaveCompletion(7, c))
	got, err := repo.GetCompletion(7, "20250615")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.Score, got.Score)
	assert.Equal(t, c.Placed, got.Placed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepo_GetCompletionMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT snapshot FROM completions").
		WithArgs(int64(7), "20250616").
		WillReturnError(sql.ErrNoRows)

	got, err := NewCompletionRepo(db).GetCompletion(7, "20250616")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompletionRepo_CleanOldCompletions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM completions WHERE completed_at < \\?").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, NewCompletionRepo(db).CleanOldCompletions(60))
	assert.NoError(t, mock.ExpectationsWereMet())
}
