package reviews

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cultureland/internal/domain/reactions"
	"cultureland/internal/metrics"
)

// ImageStore is the blob store the service uploads review images to.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, originalName string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Service struct {
	reviews   Store
	reactions reactions.Store
	images    ImageStore
	logger    *zap.SugaredLogger
}

func NewService(reviews Store, reactions reactions.Store, images ImageStore, logger *zap.SugaredLogger) *Service {
	return &Service{
		reviews:   reviews,
		reactions: reactions,
		images:    images,
		logger:    logger,
	}
}

// CreateReview uploads the optional image and persists the review. If the insert
// fails after a successful upload the uploaded object is removed again.
func (s *Service) CreateReview(ctx context.Context, userID int64, in CreateInput) (*Review, error) {
	if userID <= 0 || in.EventID <= 0 || in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidReview
	}

	var imageKey *string
	if in.Image != nil && len(in.Image.Data) > 0 {
		key, err := s.images.Upload(ctx, in.Image.Data, in.Image.Name)
		if err != nil {
			metrics.RecordUploadFailure()
			return nil, fmt.Errorf("%w: %w", ErrUploadFailure, err)
		}
		if key == "" {
			return nil, ErrMissingUploadedFile
		}
		imageKey = &key
	}

	review := &Review{
		ReviewerID: userID,
		EventID:    in.EventID,
		Rating:     in.Rating,
		Content:    in.Content,
		Image:      imageKey,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if imageKey != nil {
			s.discardImage(*imageKey)
		}
		return nil, err
	}

	metrics.RecordReviewCreated()
	return review, nil
}

func (s *Service) discardImage(key string) {
	// the request context may already be cancelled
	ctx, cancel := context.WithTimeout(context.Background(), QueryTimeoutDuration)
	defer cancel()

	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Errorw("failed to delete orphaned review image", "key", key, "error", err.Error())
	}
}

func (s *Service) ListByEvent(ctx context.Context, eventID int64, order SortOrder) ([]View, error) {
	if eventID <= 0 {
		return nil, ErrInvalidReview
	}

	items, err := s.reviews.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	views := Summarize(items)
	Order(views, order)
	s.attachURLs(views)
	return views, nil
}

// Famous returns the global top reviews by like count.
func (s *Service) Famous(ctx context.Context) ([]View, error) {
	views, err := s.reviews.TopLiked(ctx, FamousLimit)
	if err != nil {
		return nil, err
	}
	if len(views) > FamousLimit {
		views = views[:FamousLimit]
	}
	s.attachURLs(views)
	return views, nil
}

func (s *Service) attachURLs(views []View) {
	for i := range views {
		if views[i].Image != nil && *views[i].Image != "" {
			views[i].ImageURL = s.images.URL(*views[i].Image)
		}
	}
}

func (s *Service) CreateReaction(ctx context.Context, userID, reviewID int64, value reactions.Value) (*reactions.Reaction, error) {
	if !value.Valid() {
		return nil, reactions.ErrInvalidValue
	}

	reaction, err := s.reactions.Create(ctx, userID, reviewID, value)
	if err != nil {
		if errors.Is(err, reactions.ErrDuplicateReaction) {
			metrics.RecordReaction("duplicate")
		}
		return nil, err
	}

	metrics.RecordReaction("created")
	return reaction, nil
}

// DeleteReaction removes the user's reaction and returns the affected review id.
func (s *Service) DeleteReaction(ctx context.Context, userID, reviewID int64) (int64, error) {
	id, err := s.reactions.Delete(ctx, userID, reviewID)
	if err != nil {
		return 0, err
	}

	metrics.RecordReaction("deleted")
	return id, nil
}

func (s *Service) ReactionTally(ctx context.Context, reviewID int64) (reactions.Tally, error) {
	return s.reactions.Tally(ctx, reviewID)
}
