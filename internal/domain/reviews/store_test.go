package reviews

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cultureland/internal/domain/reactions"
	"cultureland/internal/infra/dbx/dbxtest"
)

func TestRepositoryCreate(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	key := "cultureland/review/1717243200000-poster"

	repo := NewRepository(&dbxtest.Querier{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			assert.Equal(t, []any{int64(3), int64(9), 4, "great show", &key}, args)
			return dbxtest.Row{Values: []any{int64(11), created}}
		},
	})

	rv := &Review{ReviewerID: 3, EventID: 9, Rating: 4, Content: "great show", Image: &key}
	require.NoError(t, repo.Create(context.Background(), rv))
	assert.Equal(t, int64(11), rv.ID)
	assert.Equal(t, created, rv.CreatedAt)
}

func TestRepositoryCreateWrapsError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewRepository(&dbxtest.Querier{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return dbxtest.Row{Err: boom}
		},
	})

	err := repo.Create(context.Background(), &Review{})
	assert.ErrorIs(t, err, boom)
}

func TestRepositoryListByEventGroupsReactions(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	key := "cultureland/review/1-a"

	rows := dbxtest.NewRows(
		[]any{int64(2), int64(5), int64(9), 5, "b", nil, t2, int64(20), int16(1), t2},
		[]any{int64(2), int64(5), int64(9), 5, "b", nil, t2, int64(21), int16(1), t2},
		[]any{int64(2), int64(5), int64(9), 5, "b", nil, t2, int64(22), int16(-1), t2},
		[]any{int64(1), int64(6), int64(9), 2, "a", key, t1, nil, nil, nil},
	)
	repo := NewRepository(&dbxtest.Querier{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			assert.Equal(t, []any{int64(9)}, args)
			assert.True(t, strings.Contains(sql, "ORDER BY r.created_at DESC"))
			return rows, nil
		},
	})

	list, err := repo.ListByEvent(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, rows.Closed())

	assert.Equal(t, int64(2), list[0].ID)
	assert.Nil(t, list[0].Image)
	require.Len(t, list[0].Reactions, 3)
	assert.Equal(t, reactions.Hate, list[0].Reactions[2].Value)
	assert.Equal(t, int64(22), list[0].Reactions[2].UserID)

	assert.Equal(t, int64(1), list[1].ID)
	require.NotNil(t, list[1].Image)
	assert.Equal(t, key, *list[1].Image)
	assert.Empty(t, list[1].Reactions)
}

func TestRepositoryListByEventEmpty(t *testing.T) {
	repo := NewRepository(&dbxtest.Querier{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return dbxtest.NewRows(), nil
		},
	})

	list, err := repo.ListByEvent(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRepositoryListByEventRowsError(t *testing.T) {
	boom := errors.New("read failed")
	rows := dbxtest.NewRows()
	rows.ErrOnce = boom
	repo := NewRepository(&dbxtest.Querier{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return rows, nil
		},
	})

	_, err := repo.ListByEvent(context.Background(), 9)
	assert.ErrorIs(t, err, boom)
}

func TestRepositoryTopLiked(t *testing.T) {
	now := time.Now()
	repo := NewRepository(&dbxtest.Querier{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			assert.Equal(t, []any{FamousLimit}, args)
			assert.True(t, strings.Contains(sql, "ORDER BY likes DESC, r.id ASC"))
			return dbxtest.NewRows(
				[]any{int64(4), int64(1), int64(2), 5, "x", nil, now, int64(7), int64(0)},
				[]any{int64(1), int64(1), int64(3), 3, "y", nil, now, int64(0), int64(2)},
			), nil
		},
	})

	views, err := repo.TopLiked(context.Background(), FamousLimit)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 7, views[0].Likes)
	assert.Equal(t, 2, views[1].Hates)
	assert.Equal(t, int64(3), views[1].EventID)
}
