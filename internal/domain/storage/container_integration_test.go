package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cultureland/internal/db"
	"cultureland/internal/domain/reactions"
	"cultureland/internal/domain/reviews"
	"cultureland/internal/domain/storage"
)

// newTestContainer migrates the database at DB_ADDR and empties both tables.
// Point DB_ADDR at a throwaway database.
func newTestContainer(t *testing.T) (*storage.Container, *pgxpool.Pool) {
	t.Helper()

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		t.Skip("DB_ADDR not set, skipping postgres integration test")
	}

	require.NoError(t, db.Migrate(addr))

	pool, err := db.New(context.Background(), db.PoolConfig{Addr: addr, MaxConns: 4, MaxIdleTime: "1m"})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE review_reactions, reviews RESTART IDENTITY`)
	require.NoError(t, err)

	return storage.NewContainer(pool), pool
}

func createReview(t *testing.T, c *storage.Container, eventID int64, rating int) *reviews.Review {
	t.Helper()
	r := &reviews.Review{ReviewerID: 1, EventID: eventID, Rating: rating, Content: "content"}
	require.NoError(t, c.Reviews.Create(context.Background(), r))
	require.NotZero(t, r.ID)
	require.False(t, r.CreatedAt.IsZero())
	return r
}

func TestPostgresListByEventGroupsReactions(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx := context.Background()

	liked := createReview(t, c, 100, 5)
	quiet := createReview(t, c, 100, 3)
	createReview(t, c, 200, 4)

	_, err := c.Reactions.Create(ctx, 10, liked.ID, reactions.Like)
	require.NoError(t, err)
	_, err = c.Reactions.Create(ctx, 11, liked.ID, reactions.Like)
	require.NoError(t, err)
	_, err = c.Reactions.Create(ctx, 12, liked.ID, reactions.Hate)
	require.NoError(t, err)

	list, err := c.Reviews.ListByEvent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// newest first
	assert.Equal(t, quiet.ID, list[0].ID)
	assert.Empty(t, list[0].Reactions)
	assert.NotNil(t, list[0].Reactions)
	assert.Nil(t, list[0].Image)

	assert.Equal(t, liked.ID, list[1].ID)
	require.Len(t, list[1].Reactions, 3)
	likes, hates := reviews.Tally(list[1].Reactions)
	assert.Equal(t, 2, likes)
	assert.Equal(t, 1, hates)
	for _, r := range list[1].Reactions {
		assert.Equal(t, liked.ID, r.ReviewID)
		assert.True(t, r.Value.Valid())
		assert.False(t, r.CreatedAt.IsZero())
	}

	empty, err := c.Reviews.ListByEvent(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresTopLikedIncludesUnreactedReviews(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx := context.Background()

	first := createReview(t, c, 1, 5)
	second := createReview(t, c, 2, 4)
	popular := createReview(t, c, 3, 2)

	_, err := c.Reactions.Create(ctx, 10, popular.ID, reactions.Like)
	require.NoError(t, err)
	_, err = c.Reactions.Create(ctx, 11, second.ID, reactions.Hate)
	require.NoError(t, err)

	top, err := c.Reviews.TopLiked(ctx, reviews.FamousLimit)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, popular.ID, top[0].ID)
	assert.Equal(t, 1, top[0].Likes)
	// zero likes, ties by ascending id
	assert.Equal(t, first.ID, top[1].ID)
	assert.Equal(t, 0, top[1].Likes)
	assert.Equal(t, second.ID, top[2].ID)
	assert.Equal(t, 1, top[2].Hates)

	limited, err := c.Reviews.TopLiked(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, popular.ID, limited[0].ID)
}

func TestPostgresReactionLedger(t *testing.T) {
	c, _ := newTestContainer(t)
	ctx := context.Background()

	review := createReview(t, c, 1, 4)

	created, err := c.Reactions.Create(ctx, 7, review.ID, reactions.Hate)
	require.NoError(t, err)
	assert.Equal(t, reactions.Hate, created.Value)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, review.ID, created.ReviewID)

	_, err = c.Reactions.Create(ctx, 7, review.ID, reactions.Like)
	assert.ErrorIs(t, err, reactions.ErrDuplicateReaction)

	_, err = c.Reactions.Create(ctx, 7, review.ID+1000, reactions.Like)
	assert.ErrorIs(t, err, reactions.ErrReviewNotFound)

	tally, err := c.Reactions.Tally(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, reactions.Tally{ReviewID: review.ID, Likes: 0, Hates: 1}, tally)

	id, err := c.Reactions.Delete(ctx, 7, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, id)

	_, err = c.Reactions.Delete(ctx, 7, review.ID)
	assert.ErrorIs(t, err, reactions.ErrReactionNotFound)

	again, err := c.Reactions.Create(ctx, 7, review.ID, reactions.Like)
	require.NoError(t, err)
	assert.Equal(t, reactions.Like, again.Value)
}
