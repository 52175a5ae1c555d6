package reactions

import "errors"

var (
	ErrInvalidValue      = errors.New("reaction value must be LIKE or HATE")
	ErrDuplicateReaction = errors.New("reaction already exists for this review")
	ErrReactionNotFound  = errors.New("reaction not found")
	ErrReviewNotFound    = errors.New("review not found")
)
