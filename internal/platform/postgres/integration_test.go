//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/postgres"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
	"github.com/vocabdeck/vocabdeck-api/internal/task"
	"github.com/vocabdeck/vocabdeck-api/internal/testdb"
)

func createUser(t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "correct horse battery")
	require.NoError(t, err)
	u.HashedPassword = "$2a$10$hash"
	require.NoError(t, postgres.NewPostgresUserStore(tx, nil).Create(context.Background(), u))
	return u
}

func TestUserStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)
		u := createUser(t, tx, "learner@example.com")

		got, err := users.GetByEmail(ctx, "LEARNER@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		dup, err := domain.NewUser("Learner@Example.com", "correct horse battery")
		require.NoError(t, err)
		dup.HashedPassword = "x"
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)
	})
}

func TestStudySetLifecycleIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		u := createUser(t, tx, "sets@example.com")
		folders := postgres.NewPostgresFolderStore(tx, nil)
		sets := postgres.NewPostgresStudySetStore(tx, nil)
		vocab := postgres.NewPostgresVocabularyStore(tx, nil)

		folder, err := domain.NewFolder(u.ID, "Languages", "")
		require.NoError(t, err)
		require.NoError(t, folders.Create(ctx, folder))

		set, err := domain.NewStudySet(u.ID, "Spanish animals", "", &folder.ID)
		require.NoError(t, err)
		require.NoError(t, sets.Create(ctx, set))

		var records []domain.Vocabulary
		for i, pair := range [][2]string{{"gato", "cat"}, {"perro", "dog"}, {"pez", "fish"}} {
			v, err := domain.NewVocabulary(set.ID, pair[0], pair[1], "")
			require.NoError(t, err)
			v.Position = i
			records = append(records, *v)
		}
		records[1].Example = "El perro corre."
		require.NoError(t, vocab.CreateMultiple(ctx, records))

		got, err := sets.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.VocabularyCount)
		require.NotNil(t, got.FolderID)

		inFolder, err := sets.List(ctx, store.StudySetFilter{UserID: u.ID, FolderID: &folder.ID})
		require.NoError(t, err)
		assert.Len(t, inFolder, 1)

		missing, err := vocab.ListMissingExamples(ctx, set.ID)
		require.NoError(t, err)
		require.Len(t, missing, 2)
		assert.Equal(t, "gato", missing[0].Term)
		assert.Equal(t, "pez", missing[1].Term)

		require.NoError(t, vocab.UpdateExample(ctx, missing[0].ID, "El gato duerme."))
		listed, err := vocab.ListByStudySet(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, "El gato duerme.", listed[0].Example)

		n, err := sets.UnlinkFolder(ctx, folder.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		require.NoError(t, folders.Delete(ctx, folder.ID))

		got, err = sets.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Nil(t, got.FolderID)

		require.NoError(t, sets.Delete(ctx, set.ID))
		listed, err = vocab.ListByStudySet(ctx, set.ID)
		require.NoError(t, err)
		assert.Empty(t, listed, "vocabulary is deleted with its study set")
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		tasks := postgres.NewPostgresTaskStore(tx, nil)

		factory, err := task.NewExampleGenerationTaskFactory(
			postgres.NewPostgresVocabularyStore(tx, nil), generation.ExampleGeneratorFunc(func(context.Context, []domain.Vocabulary) ([]generation.Example, error) {
				return nil, nil
			}), nil)
		require.NoError(t, err)

		event, err := events.NewExampleGenerationEvent(uuid.New(), uuid.New())
		require.NoError(t, err)
		tk, err := factory.FromEvent(event)
		require.NoError(t, err)

		require.NoError(t, tasks.SaveTask(ctx, tk))

		pending, err := tasks.GetPendingTasks(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, tk.ID(), pending[0].ID)
		assert.JSONEq(t, string(tk.Payload()), string(pending[0].Payload))

		require.NoError(t, tasks.UpdateTaskStatus(ctx, tk.ID(), task.TaskStatusProcessing, ""))
		stuck, err := tasks.GetProcessingTasks(ctx, time.Hour)
		require.NoError(t, err)
		assert.Empty(t, stuck, "recently updated tasks are not stuck")

		processing, err := tasks.GetProcessingTasks(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, processing, 1)

		assert.ErrorIs(t, tasks.UpdateTaskStatus(ctx, uuid.New(), task.TaskStatusFailed, "x"), store.ErrTaskNotFound)
	})
}
