package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cultureland/internal/domain/reactions"
)

func reactionsOf(reviewID int64, likes, hates int) []reactions.Reaction {
	var rs []reactions.Reaction
	user := int64(1)
	for i := 0; i < likes; i++ {
		rs = append(rs, reactions.Reaction{UserID: user, ReviewID: reviewID, Value: reactions.Like})
		user++
	}
	for i := 0; i < hates; i++ {
		rs = append(rs, reactions.Reaction{UserID: user, ReviewID: reviewID, Value: reactions.Hate})
		user++
	}
	return rs
}

func ids(views []View) []int64 {
	out := make([]int64, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{
		"":        OrderRecent,
		"recent":  OrderRecent,
		"LIKES":   OrderLikes,
		" hates ": OrderHates,
	} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortOrder("rating")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestTallyCountsEveryReaction(t *testing.T) {
	rs := reactionsOf(1, 4, 3)
	likes, hates := Tally(rs)

	assert.Equal(t, 4, likes)
	assert.Equal(t, 3, hates)
	assert.Equal(t, len(rs), likes+hates)

	likes, hates = Tally(nil)
	assert.Zero(t, likes)
	assert.Zero(t, hates)
}

// Event E: A(likes=3, hates=1, t1), B(likes=5, hates=0, t2 > t1).
func TestOrderScenario(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	base := []WithReactions{
		{Review: Review{ID: 2, EventID: 9, CreatedAt: t2}, Reactions: reactionsOf(2, 5, 0)},
		{Review: Review{ID: 1, EventID: 9, CreatedAt: t1}, Reactions: reactionsOf(1, 3, 1)},
	}

	recent := Summarize(base)
	Order(recent, OrderRecent)
	assert.Equal(t, []int64{2, 1}, ids(recent))

	byLikes := Summarize(base)
	Order(byLikes, OrderLikes)
	assert.Equal(t, []int64{2, 1}, ids(byLikes))

	byHates := Summarize(base)
	Order(byHates, OrderHates)
	assert.Equal(t, []int64{1, 2}, ids(byHates))
}

func TestOrderIsStableAndNonIncreasing(t *testing.T) {
	now := time.Now()
	base := []WithReactions{
		{Review: Review{ID: 6, CreatedAt: now}, Reactions: reactionsOf(6, 1, 2)},
		{Review: Review{ID: 5, CreatedAt: now.Add(-1 * time.Minute)}, Reactions: reactionsOf(5, 3, 0)},
		{Review: Review{ID: 4, CreatedAt: now.Add(-2 * time.Minute)}, Reactions: reactionsOf(4, 1, 2)},
		{Review: Review{ID: 3, CreatedAt: now.Add(-3 * time.Minute)}, Reactions: nil},
		{Review: Review{ID: 2, CreatedAt: now.Add(-4 * time.Minute)}, Reactions: reactionsOf(2, 3, 5)},
	}

	byLikes := Summarize(base)
	Order(byLikes, OrderLikes)
	assert.Equal(t, []int64{5, 2, 6, 4, 3}, ids(byLikes))
	for i := 1; i < len(byLikes); i++ {
		assert.GreaterOrEqual(t, byLikes[i-1].Likes, byLikes[i].Likes)
	}

	byHates := Summarize(base)
	Order(byHates, OrderHates)
	assert.Equal(t, []int64{2, 6, 4, 5, 3}, ids(byHates))
	for i := 1; i < len(byHates); i++ {
		assert.GreaterOrEqual(t, byHates[i-1].Hates, byHates[i].Hates)
	}

	recent := Summarize(base)
	Order(recent, OrderRecent)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}
