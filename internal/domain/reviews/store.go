package reviews

import (
	"context"
	"fmt"
	"time"

	"cultureland/internal/domain/reactions"
	"cultureland/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	ListByEvent(ctx context.Context, eventID int64) ([]WithReactions, error)
	TopLiked(ctx context.Context, limit int) ([]View, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (reviewer_id, event_id, rating, content, image)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		review.ReviewerID,
		review.EventID,
		review.Rating,
		review.Content,
		review.Image,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}

// ListByEvent returns every review of the event with its reactions, newest first.
// There is no pagination: the whole set is loaded on each call.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]WithReactions, error) {
	query := `
        SELECT r.id, r.reviewer_id, r.event_id, r.rating, r.content, r.image, r.created_at,
               rr.user_id, rr.reaction_value, rr.created_at
        FROM reviews r
        LEFT JOIN review_reactions rr ON rr.review_id = r.id
        WHERE r.event_id = $1
        ORDER BY r.created_at DESC, r.id DESC
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	list := []WithReactions{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			rv            Review
			reactorID     *int64
			reactionValue *int16
			reactedAt     *time.Time
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.ReviewerID,
			&rv.EventID,
			&rv.Rating,
			&rv.Content,
			&rv.Image,
			&rv.CreatedAt,
			&reactorID,
			&reactionValue,
			&reactedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}

		i, seen := index[rv.ID]
		if !seen {
			i = len(list)
			index[rv.ID] = i
			list = append(list, WithReactions{Review: rv, Reactions: []reactions.Reaction{}})
		}
		if reactorID == nil || reactionValue == nil {
			continue
		}
		reaction := reactions.Reaction{
			UserID:   *reactorID,
			ReviewID: rv.ID,
			Value:    reactions.Value(*reactionValue),
		}
		if reactedAt != nil {
			reaction.CreatedAt = *reactedAt
		}
		list[i].Reactions = append(list[i].Reactions, reaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}

	return list, nil
}

// TopLiked ranks all reviews by like count, ties broken by ascending id.
func (r *Repository) TopLiked(ctx context.Context, limit int) ([]View, error) {
	query := `
        SELECT r.id, r.reviewer_id, r.event_id, r.rating, r.content, r.image, r.created_at,
               COUNT(rr.user_id) FILTER (WHERE rr.reaction_value = 1) AS likes,
               COUNT(rr.user_id) FILTER (WHERE rr.reaction_value = -1) AS hates
        FROM reviews r
        LEFT JOIN review_reactions rr ON rr.review_id = r.id
        GROUP BY r.id
        ORDER BY likes DESC, r.id ASC
        LIMIT $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing famous reviews: %w", err)
	}
	defer rows.Close()

	views := []View{}
	for rows.Next() {
		var v View
		if err := rows.Scan(
			&v.ID,
			&v.ReviewerID,
			&v.EventID,
			&v.Rating,
			&v.Content,
			&v.Image,
			&v.CreatedAt,
			&v.Likes,
			&v.Hates,
		); err != nil {
			return nil, fmt.Errorf("scanning famous review: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating famous reviews: %w", err)
	}

	return views, nil
}
