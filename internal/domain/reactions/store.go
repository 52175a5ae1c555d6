package reactions

import (
	"context"
	"fmt"

	"cultureland/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, userID, reviewID int64, value Value) (*Reaction, error)
	Delete(ctx context.Context, userID, reviewID int64) (int64, error)
	Tally(ctx context.Context, reviewID int64) (Tally, error)
}

// Repository is the reaction ledger. At most one row exists per (user, review);
// the primary key enforces it, so concurrent inserts for the same pair race safely.
type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, userID, reviewID int64, value Value) (*Reaction, error) {
	if !value.Valid() {
		return nil, ErrInvalidValue
	}

	query := `
        INSERT INTO review_reactions (user_id, review_id, reaction_value)
        VALUES ($1, $2, $3)
        RETURNING user_id, review_id, reaction_value, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var reaction Reaction
	err := r.db.QueryRow(ctx, query, userID, reviewID, int16(value)).Scan(
		&reaction.UserID,
		&reaction.ReviewID,
		&reaction.Value,
		&reaction.CreatedAt,
	)
	if err != nil {
		if _, ok := dbx.IsUniqueViolation(err); ok {
			return nil, ErrDuplicateReaction
		}
		if _, ok := dbx.IsForeignKeyViolation(err); ok {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("creating reaction: %w", err)
	}
	return &reaction, nil
}

// Delete removes the caller's reaction and returns the review id it was attached to.
func (r *Repository) Delete(ctx context.Context, userID, reviewID int64) (int64, error) {
	query := `
        DELETE FROM review_reactions
        WHERE user_id = $1 AND review_id = $2
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	result, err := r.db.Exec(ctx, query, userID, reviewID)
	if err != nil {
		return 0, fmt.Errorf("deleting reaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrReactionNotFound
	}
	return reviewID, nil
}

func (r *Repository) Tally(ctx context.Context, reviewID int64) (Tally, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE reaction_value = 1),
            COUNT(*) FILTER (WHERE reaction_value = -1)
        FROM review_reactions
        WHERE review_id = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	t := Tally{ReviewID: reviewID}
	if err := r.db.QueryRow(ctx, query, reviewID).Scan(&t.Likes, &t.Hates); err != nil {
		return Tally{}, fmt.Errorf("tallying reactions: %w", err)
	}
	return t, nil
}
