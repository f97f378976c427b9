// Package speech is the client for the cloud pronunciation-assessment
// service. Scoring is owned entirely by the service; this package only
// transports the audio and decodes the result shape.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

var (
	ErrMissingAPIKey = errors.New("speech: api key is not configured")
	ErrEmptyAudio    = errors.New("speech: empty audio buffer")
)

// Config configures the assessment client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client submits recordings for pronunciation assessment.
type Client struct {
	client *resty.Client
	apiKey string
	logger *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{client: cli, apiKey: cfg.APIKey, logger: log}
}

// Assess scores the recording in audio against referenceText. The audio
// buffer is opaque to this client; the recorder owns format and codec.
func (c *Client) Assess(ctx context.Context, referenceText string, audio []byte) (models.Assessment, error) {
	if c.apiKey == "" {
		return models.Assessment{}, ErrMissingAPIKey
	}
	if len(audio) == 0 {
		return models.Assessment{}, ErrEmptyAudio
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetMultipartField("audio", "recording.wav", "audio/wav", bytes.NewReader(audio)).
		SetMultipartFormData(map[string]string{"referenceText": referenceText}).
		Post("/v1/assess")
	if err != nil {
		return models.Assessment{}, fmt.Errorf("assess request: %w", err)
	}
	if resp.IsError() {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return models.Assessment{}, fmt.Errorf("assess: http %d: %s", resp.StatusCode(), body)
	}

	var result models.Assessment
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.Assessment{}, fmt.Errorf("decode assessment: %w", err)
	}

	return result, nil
}
