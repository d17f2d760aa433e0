package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorCause(t *testing.T) {
	previous := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	responder := NewResponder(log.Logger)
	apiErr := errs.NewDatabaseError("create", "project", errors.New("UNIQUE constraint failed: projects.title"))

	write := func() ErrorResponse {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, apiErr)
		require.Equal(t, http.StatusConflict, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	body := write()
	assert.Equal(t, "project unique constraint violation: Failed to create project", body.Error)
	assert.Empty(t, body.Cause)

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	body = write()
	assert.Contains(t, body.Cause, "UNIQUE constraint failed: projects.title")
}
