package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cultureland/internal/domain/reactions"
	"cultureland/internal/domain/reviews"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type createReviewPayload struct {
	EventID int64  `validate:"required,gt=0"`
	Rating  int    `validate:"required,min=1,max=5"`
	Content string `validate:"max=2000"`
}

// createReviewHandler godoc
//
//	@Summary		Create review
//	@Description	Multipart form with eventId, rating, content and an optional image file.
//	@Tags			Reviews
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			eventId	formData	int		true	"Event ID"
//	@Param			rating	formData	int		true	"Rating 1-5"
//	@Param			content	formData	string	false	"Review text"
//	@Param			image	formData	file	false	"Review image"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	principal := getPrincipalFromContext(r)
	if principal == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("missing principal"))
		return
	}

	if err := readMultipart(w, r); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	eventID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("eventId")), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid eventId"))
		return
	}
	rating, err := strconv.Atoi(strings.TrimSpace(r.FormValue("rating")))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid rating"))
		return
	}

	payload := createReviewPayload{
		EventID: eventID,
		Rating:  rating,
		Content: r.FormValue("content"),
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	image, err := readReviewImage(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.CreateReview(r.Context(), principal.ID, reviews.CreateInput{
		EventID: payload.EventID,
		Rating:  payload.Rating,
		Content: payload.Content,
		Image:   image,
	})
	if err != nil {
		app.reviewErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, review)
}

// readReviewImage returns nil when no image field was sent.
func readReviewImage(r *http.Request) (*reviews.Image, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReviewImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxReviewImageBytes {
		return nil, errors.New("image exceeds 8MB")
	}
	if len(data) == 0 {
		return nil, nil
	}

	if mime := http.DetectContentType(data); !allowedImageTypes[mime] {
		return nil, fmt.Errorf("invalid image type: %s", mime)
	}

	return &reviews.Image{Data: data, Name: header.Filename}, nil
}

// listReviewsHandler godoc
//
//	@Summary		List reviews of an event
//	@Description	Returns every review of the event with like/hate tallies. orderBy is recent (default), likes or hates.
//	@Tags			Reviews
//	@Produce		json
//	@Param			eventId	query		int		true	"Event ID"
//	@Param			orderBy	query		string	false	"recent|likes|hates"
//	@Success		200		{array}		reviews.View
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	eventID, err := strconv.ParseInt(strings.TrimSpace(q.Get("eventId")), 10, 64)
	if err != nil || eventID <= 0 {
		app.badRequestResponse(w, r, errors.New("invalid eventId"))
		return
	}

	order, err := reviews.ParseSortOrder(q.Get("orderBy"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	views, err := app.reviews.ListByEvent(r.Context(), eventID, order)
	if err != nil {
		app.reviewErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, views)
}

// famousReviewsHandler godoc
//
//	@Summary		Famous reviews
//	@Description	Top 10 reviews across all events by like count. Ties are ordered by ascending review id.
//	@Tags			Reviews
//	@Produce		json
//	@Success		200	{array}		reviews.View
//	@Failure		500	{object}	error
//	@Router			/reviews/famous [get]
func (app *application) famousReviewsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := app.reviews.Famous(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, views)
}

// reviewErrorResponse maps service errors to HTTP responses.
func (app *application) reviewErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrInvalidReview),
		errors.Is(err, reviews.ErrInvalidOrder),
		errors.Is(err, reviews.ErrMissingUploadedFile),
		errors.Is(err, reactions.ErrInvalidValue):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, reactions.ErrDuplicateReaction):
		app.conflictResponse(w, r, err)
	case errors.Is(err, reactions.ErrReactionNotFound),
		errors.Is(err, reactions.ErrReviewNotFound):
		app.notFoundResponse(w, r, err)
	default:
		// includes reviews.ErrUploadFailure
		app.internalServerError(w, r, err)
	}
}
