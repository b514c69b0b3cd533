package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// testRepository exercises the behaviour every backend must share.
// The repository must start empty.
func testRepository(t *testing.T, repository Repository) {
	ctx := context.Background()

	_, err := repository.HighScore(ctx)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected not found, got %v", err)

	base := time.UnixMilli(time.Now().UnixMilli())
	records := []*models.ScoreRecord{
		{Score: 4, Timestamp: base},
		{Score: 11, Timestamp: base.Add(time.Second)},
		{Score: 0, Timestamp: base.Add(2 * time.Second)},
		{Score: 11, Timestamp: base.Add(3 * time.Second)},
	}
	for _, record := range records {
		require.NoError(t, repository.SaveScore(ctx, record))
	}

	best, err := repository.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, best.Score)
	assert.True(t, best.Timestamp.Equal(base.Add(time.Second)) || best.Timestamp.Equal(base.Add(3*time.Second)))
}

func TestInMemoryRepository(t *testing.T) {
	testRepository(t, NewInMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	repository, err := NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	testRepository(t, repository)
	require.NoError(t, repository.Close(ctx))

	// records survive reopening and migrations are idempotent
	reopened, err := NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	best, err := reopened.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, best.Score)
}

func TestPostgresRepository(t *testing.T) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	repository, err := NewPostgresRepository(ctx, connStr)
	require.NoError(t, err)
	defer repository.Close(ctx)

	_, err = repository.pool.Exec(ctx, "TRUNCATE scores")
	require.NoError(t, err)
	testRepository(t, repository)
}

func TestFirestoreRepository(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	repository, err := NewFirestoreRepository(ctx, FirestoreOptions{
		ProjectID:     "snake-test",
		Collection:    "snake_scores_" + time.Now().Format("20060102150405.000000000"),
		ClientOptions: []option.ClientOption{option.WithoutAuthentication()},
	})
	require.NoError(t, err)
	defer repository.Close(ctx)

	testRepository(t, repository)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&ErrNotFound{}))
	assert.False(t, IsNotFound(os.ErrNotExist))
	assert.False(t, IsNotFound(nil))
}
