package reviews

import (
	"time"

	"cultureland/internal/domain/reactions"
)

var (
	QueryTimeoutDuration = time.Second * 5
)

// FamousLimit is the size of the global leaderboard.
const FamousLimit = 10

type Review struct {
	ID         int64     `json:"id"`
	ReviewerID int64     `json:"reviewerId"`
	EventID    int64     `json:"eventId"`
	Rating     int       `json:"rating"` // 1-5
	Content    string    `json:"content"`
	Image      *string   `json:"image"` // blob key, nil when no image was attached
	CreatedAt  time.Time `json:"createdAt"`
}

// WithReactions is a review together with its full reaction set.
type WithReactions struct {
	Review
	Reactions []reactions.Reaction
}

// View is a review with its reaction tallies. It is rebuilt on every read.
type View struct {
	Review
	Likes    int    `json:"likes"`
	Hates    int    `json:"hates"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Image is an uploaded file attached to a new review.
type Image struct {
	Data []byte
	Name string
}

type CreateInput struct {
	EventID int64
	Rating  int
	Content string
	Image   *Image
}
