package reviews

import "errors"

var (
	ErrInvalidReview       = errors.New("invalid review")
	ErrInvalidOrder        = errors.New("orderBy must be one of recent, likes, hates")
	ErrUploadFailure       = errors.New("failed to upload image")
	ErrMissingUploadedFile = errors.New("uploaded image did not produce a usable key")
)
