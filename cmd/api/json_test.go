package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes one object", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var p payload
		require.NoError(t, readJSON(httptest.NewRecorder(), req, &p))
		assert.Equal(t, "ok", p.Name)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		err := readJSON(httptest.NewRecorder(), req, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("rejects trailing objects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var p payload
		err := readJSON(httptest.NewRecorder(), req, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single JSON object")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nickname":"a"}`))
		var p payload
		assert.Error(t, readJSON(httptest.NewRecorder(), req, &p))
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("x", maxJSONBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		err := readJSON(httptest.NewRecorder(), req, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "larger than")
	})
}

func TestReadMultipartRejectsOversizedForm(t *testing.T) {
	image := bytes.Repeat([]byte{0x89}, maxMultipartBytes+1)
	body, ct := multipartReview(t, map[string]string{"eventId": "1", "rating": "3"}, image, "big.png")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ct)

	assert.Error(t, readMultipart(httptest.NewRecorder(), req))
}
