package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

const assessmentJSON = `{
	"accuracyScore": 87.5,
	"fluencyScore": 92.0,
	"completenessScore": 100.0,
	"pronunciationScore": 89.1,
	"words": [
		{
			"word": "hello",
			"accuracyScore": 95.0,
			"errorType": "None",
			"phonemes": [
				{"phoneme": "h", "accuracyScore": 98.0},
				{"phoneme": "ə", "accuracyScore": 91.0}
			]
		},
		{
			"word": "world",
			"accuracyScore": 61.0,
			"errorType": "Mispronunciation"
		}
	]
}`

func TestClient_Assess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/assess", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Hello world", r.FormValue("referenceText"))

		file, _, err := r.FormFile("audio")
		require.NoError(t, err)
		audio, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x52, 0x49, 0x46, 0x46}, audio)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, assessmentJSON)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, logger.Nop())

	result, err := c.Assess(context.Background(), "Hello world", []byte{0x52, 0x49, 0x46, 0x46})
	require.NoError(t, err)

	assert.InDelta(t, 87.5, result.AccuracyScore, 0.001)
	assert.InDelta(t, 89.1, result.PronunciationScore, 0.001)
	require.Len(t, result.Words, 2)
	assert.Equal(t, models.WordErrorNone, result.Words[0].ErrorType)
	assert.Equal(t, models.WordErrorMispronounced, result.Words[1].ErrorType)
	require.Len(t, result.Words[0].Phonemes, 2)
	assert.Equal(t, "h", result.Words[0].Phonemes[0].Phoneme)
}

func TestClient_AssessServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, logger.Nop())

	_, err := c.Assess(context.Background(), "Hello", []byte{1})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
}

func TestClient_AssessValidation(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:9", APIKey: ""}, logger.Nop())
	_, err := c.Assess(context.Background(), "Hello", []byte{1})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c = NewClient(Config{BaseURL: "http://localhost:9", APIKey: "k"}, logger.Nop())
	_, err = c.Assess(context.Background(), "Hello", nil)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}
