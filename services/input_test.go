package services

import (
	"testing"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectImage(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		maxBytes    int
		contentType string
		message     string
	}{
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), contentType: "image/gif"},
		{name: "svg", data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`), contentType: "image/svg+xml"},
		{name: "empty", data: nil, message: messageNotAnImage},
		{name: "pdf", data: []byte("%PDF-1.7\n"), message: messageNotAnImage},
		{name: "too large", data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), maxBytes: 4, message: "The image field must not be greater than 0 kilobytes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, message := inspectImage(&ImageUpload{Data: tt.data}, tt.maxBytes)
			assert.Equal(t, tt.contentType, contentType)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestCollectFieldErrorsUsesJSONNames(t *testing.T) {
	fields := errs.FieldErrors{}
	require.NoError(t, collectFieldErrors(ProjectInput{Title: "Long enough", URL: "u", Content: "0123456789"}, fields))

	assert.Equal(t, errs.FieldErrors{"type_id": {"The type id field is required."}}, fields)
}
