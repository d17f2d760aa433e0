package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/rpupo63/portfolio-admin-backend/storage"
	"github.com/stretchr/testify/require"
)

// RecordingBackend is an in-memory storage.Backend that remembers every call.
type RecordingBackend struct {
	mu        sync.Mutex
	Blobs     map[string][]byte
	Puts      []string
	Deletes   []string
	PutErr    error
	DeleteErr error
}

var _ storage.Backend = (*RecordingBackend)(nil)

func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{Blobs: map[string][]byte{}}
}

func (b *RecordingBackend) Put(_ context.Context, directory string, data []byte, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.PutErr != nil {
		return "", b.PutErr
	}

	key := storage.NewKey(directory, contentType)
	b.Blobs[key] = append([]byte(nil), data...)
	b.Puts = append(b.Puts, key)
	return key, nil
}

func (b *RecordingBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Deletes = append(b.Deletes, key)
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	delete(b.Blobs, key)
	return nil
}

// Seed stores data under an exact key, bypassing key generation.
func (b *RecordingBackend) Seed(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Blobs[key] = data
}

func (b *RecordingBackend) Has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.Blobs[key]
	return ok
}

// PNG encodes a small solid image.
func PNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// OversizedPNG returns a valid PNG padded past size bytes.
func OversizedPNG(t *testing.T, size int) []byte {
	t.Helper()

	data := PNG(t)
	padding := size - len(data) + 1
	if padding < 1 {
		panic(fmt.Sprintf("cannot pad png of %d bytes to %d", len(data), size))
	}
	return append(data, make([]byte, padding)...)
}
