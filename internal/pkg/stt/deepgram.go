package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
)

const providerName = "deepgram"

// Transcriber converts recorded audio into text. An empty transcript means
// the provider understood no speech and is not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type DeepgramClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewDeepgramClient(apiKey string, baseURL string) *DeepgramClient {
	if baseURL == "" {
		baseURL = "https://api.deepgram.com"
	}
	return &DeepgramClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	url := c.BaseURL + "/v1/listen?model=nova-2&smart_format=true&punctuate=true&diarize=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "failed to build request", err.Error())
	}
	req.Header.Set("Authorization", "Token "+c.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "transcription request failed", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "failed to read response", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.NewUpstreamError(providerName, "transcription failed", providerDetail(body))
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.NewUpstreamError(providerName, "unexpected response shape", err.Error())
	}

	// Missing channels or alternatives means no usable transcript field.
	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", apperr.NewUpstreamError(providerName, "no transcript in response", nil)
	}

	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}

// providerDetail keeps the provider's diagnostic JSON intact when it is
// JSON, otherwise falls back to the raw body text.
func providerDetail(body []byte) any {
	var detail any
	if err := json.Unmarshal(body, &detail); err != nil {
		return string(body)
	}
	return detail
}
