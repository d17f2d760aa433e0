package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProjectInputErrors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"title":`))
		req.Header.Set("Content-Type", "application/json")

		_, err := decodeProjectInput(httptest.NewRecorder(), req, 1<<10)
		require.Error(t, err)
		assert.True(t, errs.IsMalformedPayloadError(err))
	})

	t.Run("body over limit", func(t *testing.T) {
		body := `{"content":"` + strings.Repeat("a", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		_, err := decodeProjectInput(httptest.NewRecorder(), req, 16)
		require.Error(t, err)
		assert.True(t, errs.IsMaxBodySizeExceededError(err))
	})

	t.Run("unknown media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("title=x"))
		req.Header.Set("Content-Type", "text/plain")

		_, err := decodeProjectInput(httptest.NewRecorder(), req, 1<<10)
		require.Error(t, err)
		assert.True(t, errs.IsUnsupportedMediaTypeError(err))
	})
}

func TestDecodeProjectInputForm(t *testing.T) {
	values := url.Values{
		"title":          {"Portfolio"},
		"url":            {"https://example.test"},
		"content":        {"A long enough description"},
		"type_id":        {"3"},
		"technologies[]": {"1", "2"},
	}
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	input, err := decodeProjectInput(httptest.NewRecorder(), req, 1<<10)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", input.Title)
	assert.Equal(t, uint(3), input.TypeID)
	assert.Equal(t, []uint{1, 2}, input.TechnologyIDs)
	assert.Nil(t, input.Image)
}
