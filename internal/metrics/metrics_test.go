package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/reviews/{reviewID}/reactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/reviews/{reviewID}/reactions", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews/12/reactions", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/reviews/{reviewID}/reactions", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordHelpers(t *testing.T) {
	created := testutil.ToFloat64(reviewsCreated)
	RecordReviewCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(reviewsCreated))

	failures := testutil.ToFloat64(uploadFailures)
	RecordUploadFailure()
	assert.Equal(t, failures+1, testutil.ToFloat64(uploadFailures))

	unknown := testutil.ToFloat64(reactionEvents.WithLabelValues("unknown"))
	RecordReaction("")
	assert.Equal(t, unknown+1, testutil.ToFloat64(reactionEvents.WithLabelValues("unknown")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordReaction("created")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "cultureland_reactions_events_total"))
}
