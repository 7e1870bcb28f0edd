package postgresdb_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/models"
	"careerai/internal/postgresdb"
	"careerai/internal/storage"
)

func setUpTestDB(t *testing.T) *postgresdb.Store {
	t.Helper()

	connString := os.Getenv("DB_TEST_URL")
	if connString == "" {
		t.Skip("DB_TEST_URL not set, skipping integration test")
	}

	ctx := context.Background()

	db, err := postgresdb.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if _, err := db.Pool.Exec(ctx, "TRUNCATE TABLE jobs"); err != nil {
			t.Errorf("failed to clean up jobs table: %v", err)
		}
		db.Close()
	})

	return db
}

func newJob(t *testing.T) *models.Job {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return &models.Job{
		ID:        id,
		Status:    models.StatusQueued,
		FileName:  "resume.pdf",
		ObjectKey: id.String() + ".pdf",
		Model:     "nvidia/nemotron-nano-12b-v2-vl:free",
		Language:  "english",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestCreateAndGet(t *testing.T) {
	db := setUpTestDB(t)
	ctx := context.Background()
	job := newJob(t)

	require.NoError(t, db.Create(ctx, job))

	got, err := db.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, models.StatusQueued, got.Status)
	assert.Equal(t, job.ObjectKey, got.ObjectKey)
	assert.Nil(t, got.Analysis)
	assert.True(t, job.CreatedAt.Equal(got.CreatedAt))
}

func TestLifecycle(t *testing.T) {
	db := setUpTestDB(t)
	ctx := context.Background()
	job := newJob(t)
	require.NoError(t, db.Create(ctx, job))

	require.NoError(t, db.MarkProcessing(ctx, job.ID))
	got, err := db.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)

	require.NoError(t, db.Complete(ctx, job.ID, "Jane Doe\n", "ATS Score: 80"))
	got, err = db.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "ATS Score: 80", *got.Analysis)
}

func TestFail(t *testing.T) {
	db := setUpTestDB(t)
	ctx := context.Background()
	job := newJob(t)
	require.NoError(t, db.Create(ctx, job))

	require.NoError(t, db.Fail(ctx, job.ID, "failed to read pdf"))

	got, err := db.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "failed to read pdf", *got.ErrorMessage)
}

func TestGet_NotFound(t *testing.T) {
	db := setUpTestDB(t)

	_, err := db.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, storage.ErrJobNotFound))

	err = db.MarkProcessing(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, storage.ErrJobNotFound))
}

func TestNew_EmptyConnString(t *testing.T) {
	_, err := postgresdb.New(context.Background(), "")
	assert.Error(t, err)
}
