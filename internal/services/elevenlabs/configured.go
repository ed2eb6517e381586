package elevenlabs

import "ankivoice/internal/config"

// NewConfiguredClient builds a client from the [elevenlabs] config section.
func NewConfiguredClient(cfg *config.Config, opts ...Option) *Client {
	if cfg == nil {
		return NewClient(Config{Settings: DefaultVoiceSettings()}, opts...)
	}
	el := cfg.ElevenLabs
	return NewClient(Config{
		APIKey:       el.APIKey,
		BaseURL:      el.BaseURL,
		VoiceName:    el.VoiceName,
		ModelID:      el.ModelID,
		LanguageCode: el.LanguageCode,
		OutputFormat: el.OutputFormat,
		Settings: VoiceSettings{
			Stability:       el.Stability,
			SimilarityBoost: el.SimilarityBoost,
			Style:           el.Style,
			UseSpeakerBoost: el.SpeakerBoost,
		},
		Timeout: cfg.RequestTimeout(),
	}, opts...)
}
