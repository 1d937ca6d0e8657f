package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finalfeedback/finalfeedback/internal/models"
	"github.com/finalfeedback/finalfeedback/internal/storage"
)

func newTestRepo(t *testing.T) *FeedbackRepository {
	t.Helper()

	db, err := storage.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { db.Close() })

	return NewFeedbackRepository(db)
}

func newFeedback(overall int) *models.Feedback {
	name := "Shira Vell"
	server := "Balmung"
	return &models.Feedback{
		CharacterName:       &name,
		Server:              &server,
		RatingMechanics:     4,
		RatingDamage:        3,
		RatingTeamwork:      5,
		RatingCommunication: 4,
		RatingOverall:       overall,
		IPAddress:           "1.2.3.4",
	}
}

func TestCreate_AssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	feedback := newFeedback(5)
	require.NoError(t, repo.Create(ctx, feedback))

	assert.NotEmpty(t, feedback.ID)

	found, err := repo.FindByID(ctx, feedback.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Shira Vell", *found.CharacterName)
	assert.Equal(t, 5, found.RatingOverall)
}

func TestFindByID_Missing(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.FindByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := newFeedback(3)
	require.NoError(t, repo.Create(ctx, older))
	newer := newFeedback(5)
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, newer))

	feedbacks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, newer.ID, feedbacks[0].ID)
	assert.Equal(t, older.ID, feedbacks[1].ID)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	feedback := newFeedback(4)
	require.NoError(t, repo.Create(ctx, feedback))

	deleted, err := repo.Delete(ctx, feedback.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, feedback.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	avg, err := repo.AverageOverall(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	require.NoError(t, repo.Create(ctx, newFeedback(2)))
	require.NoError(t, repo.Create(ctx, newFeedback(4)))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	avg, err = repo.AverageOverall(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 0.001)
}
