package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cultureland/internal/domain/reactions"
)

type createReactionPayload struct {
	ReactionValue reactions.Value `json:"reactionValue" validate:"required"`
}

func parseReviewID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid review ID")
	}
	return id, nil
}

// createReactionHandler godoc
//
//	@Summary		React to a review
//	@Description	Adds a LIKE or HATE. A user holds at most one reaction per review; delete it before reacting again.
//	@Tags			Reactions
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int						true	"Review ID"
//	@Param			payload		body		createReactionPayload	true	"Reaction"
//	@Success		201			{object}	reactions.Reaction
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/reactions [post]
func (app *application) createReactionHandler(w http.ResponseWriter, r *http.Request) {
	principal := getPrincipalFromContext(r)
	if principal == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("missing principal"))
		return
	}

	reviewID, err := parseReviewID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload createReactionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, reactions.ErrInvalidValue)
		return
	}

	reaction, err := app.reviews.CreateReaction(r.Context(), principal.ID, reviewID, payload.ReactionValue)
	if err != nil {
		app.reviewErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, reaction)
}

// deleteReactionHandler godoc
//
//	@Summary		Remove reaction
//	@Tags			Reactions
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	map[string]int64
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/reactions [delete]
func (app *application) deleteReactionHandler(w http.ResponseWriter, r *http.Request) {
	principal := getPrincipalFromContext(r)
	if principal == nil {
		app.unauthorizedErrorResponse(w, r, errors.New("missing principal"))
		return
	}

	reviewID, err := parseReviewID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	id, err := app.reviews.DeleteReaction(r.Context(), principal.ID, reviewID)
	if err != nil {
		app.reviewErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]int64{"reviewId": id})
}

// getReactionTallyHandler godoc
//
//	@Summary		Reaction tally
//	@Tags			Reactions
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	reactions.Tally
//	@Router			/reviews/{reviewID}/reactions [get]
func (app *application) getReactionTallyHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseReviewID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tally, err := app.reviews.ReactionTally(r.Context(), reviewID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tally)
}
