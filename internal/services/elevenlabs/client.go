package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"ankivoice/internal/services"
)

const (
	defaultBaseURL      = "https://api.elevenlabs.io/v1"
	defaultHTTPTimeout  = 60 * time.Second
	defaultVoiceName    = "George"
	defaultModelID      = "eleven_turbo_v2_5"
	defaultLanguageCode = "cs"
	defaultOutputFormat = "mp3_44100_128"
	maxErrorBodyBytes   = 512
	apiKeyHeader        = "xi-api-key"

	opListVoices = "list voices"
)

// HTTPDoer describes the HTTP client used to reach the API.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// VoiceSettings tunes the synthesized delivery.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// DefaultVoiceSettings returns the settings used when none are configured.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{Stability: 0.5, SimilarityBoost: 0.8, Style: 0.2, UseSpeakerBoost: true}
}

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey       string
	BaseURL      string
	VoiceName    string
	ModelID      string
	LanguageCode string
	OutputFormat string
	Settings     VoiceSettings
	Timeout      time.Duration
}

// Voice is one entry of the voice catalogue.
type Voice struct {
	ID   string `json:"voice_id"`
	Name string `json:"name"`
}

// Client wraps the voices and text-to-speech endpoints.
type Client struct {
	cfg    Config
	client HTTPDoer
	folder cases.Caser
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient constructs a client, filling unset string fields with the
// defaults used for Czech sentence audio. Settings are sent as given; start
// from DefaultVoiceSettings for the usual delivery.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(cfg.VoiceName) == "" {
		cfg.VoiceName = defaultVoiceName
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = defaultLanguageCode
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaultOutputFormat
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	c := &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		folder: cases.Fold(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VoiceName returns the configured voice name.
func (c *Client) VoiceName() string {
	return c.cfg.VoiceName
}

type voicesEnvelope struct {
	Voices []Voice `json:"voices"`
}

// ListVoices returns the voices available to the API key. The endpoint wraps
// the list in an object; a bare array is accepted too.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.cfg.BaseURL+"/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, opListVoices)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var voices []Voice
		if err := json.Unmarshal(trimmed, &voices); err != nil {
			return nil, fmt.Errorf("decode voices: %w", err)
		}
		return voices, nil
	}
	var envelope voicesEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode voices: %w", err)
	}
	return envelope.Voices, nil
}

// ResolveVoice picks the voice whose name matches the configured name under
// Unicode case folding, falling back to the first voice listed.
func (c *Client) ResolveVoice(ctx context.Context) (Voice, error) {
	voices, err := c.ListVoices(ctx)
	if err != nil {
		return Voice{}, err
	}
	return pickVoice(voices, c.cfg.VoiceName, c.folder)
}

func pickVoice(voices []Voice, name string, folder cases.Caser) (Voice, error) {
	if len(voices) == 0 {
		return Voice{}, services.Wrap(services.ErrProvider, "elevenlabs", "resolve voice", "", ErrNoVoices)
	}
	want := folder.String(strings.TrimSpace(name))
	for _, voice := range voices {
		if folder.String(strings.TrimSpace(voice.Name)) == want {
			return voice, nil
		}
	}
	return voices[0], nil
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	LanguageCode  string        `json:"language_code"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize converts text to audio with the given voice and returns the
// encoded bytes.
func (c *Client) Synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	if strings.TrimSpace(voiceID) == "" {
		return nil, errors.New("synthesize: voice id is required")
	}
	payload, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       c.cfg.ModelID,
		LanguageCode:  c.cfg.LanguageCode,
		VoiceSettings: c.cfg.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?%s",
		c.cfg.BaseURL,
		url.PathEscape(voiceID),
		url.Values{"output_format": {c.cfg.OutputFormat}}.Encode(),
	)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	return c.do(req, "synthesize")
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build elevenlabs request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	return req, nil
}

func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "elevenlabs", operation, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		statusErr := &StatusError{
			StatusCode:  resp.StatusCode,
			Body:        strings.TrimSpace(string(snippet)),
			VoiceLookup: operation == opListVoices,
		}
		return nil, services.Wrap(services.ErrProvider, "elevenlabs", operation, "", statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "elevenlabs", operation, "read response", err)
	}
	return body, nil
}
