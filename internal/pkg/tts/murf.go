package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
)

const (
	providerName = "murf"

	DefaultVoiceID = "en-US-ken"
)

// Synthesizer converts text to base64-encoded audio. The audio payload is
// opaque to this system and is never decoded here.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voiceID string) (string, error)
}

type MurfClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewMurfClient(apiKey string, baseURL string) *MurfClient {
	if baseURL == "" {
		baseURL = "https://api.murf.ai"
	}
	return &MurfClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type murfSynthesizeRequest struct {
	Text           string `json:"text"`
	VoiceID        string `json:"voiceId"`
	Format         string `json:"format"`
	SampleRate     int    `json:"sampleRate"`
	EncodeAsBase64 bool   `json:"encodeAsBase64"`
}

type murfSynthesizeResponse struct {
	EncodedAudio string `json:"encodedAudio"`
}

// Synthesize returns the generated speech as base64 MP3.
func (c *MurfClient) Synthesize(ctx context.Context, text string, voiceID string) (string, error) {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	payload, err := json.Marshal(murfSynthesizeRequest{
		Text:           text,
		VoiceID:        voiceID,
		Format:         "MP3",
		SampleRate:     24000,
		EncodeAsBase64: true,
	})
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "failed to encode request", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/speech/generate-with-key", bytes.NewReader(payload))
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "failed to build request", err.Error())
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "text-to-speech request failed", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "failed to read response", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.NewUpstreamError(providerName, "text-to-speech failed", providerDetail(body))
	}

	var parsed murfSynthesizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.NewUpstreamError(providerName, "unexpected response shape", err.Error())
	}

	if parsed.EncodedAudio == "" {
		return "", apperr.NewUpstreamError(providerName, "no audio data in response", nil)
	}

	return parsed.EncodedAudio, nil
}

// ListVoices returns the provider's voice catalog unmodified.
func (c *MurfClient) ListVoices(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/speech/voices", nil)
	if err != nil {
		return nil, apperr.NewUpstreamError(providerName, "failed to build request", err.Error())
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperr.NewUpstreamError(providerName, "voice list request failed", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewUpstreamError(providerName, "failed to read response", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.NewUpstreamError(providerName, "failed to fetch voices", providerDetail(body))
	}

	return json.RawMessage(body), nil
}

func providerDetail(body []byte) any {
	var detail any
	if err := json.Unmarshal(body, &detail); err != nil {
		return string(body)
	}
	return detail
}
