package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable. The API key is not required
// here because read-only commands never contact the provider; see
// RequireAPIKey.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateElevenLabs(); err != nil {
		return err
	}
	if err := c.validateAnnotation(); err != nil {
		return err
	}
	if c.Generation.DelayMillis < 0 {
		return errors.New("generation.delay_ms must be >= 0")
	}
	return nil
}

// RequireAPIKey reports an error when no ElevenLabs API key is available.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.ElevenLabs.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/ankivoice/config.toml"
	}
	return fmt.Errorf("elevenlabs.api_key is required. Set ELEVEN_LABS_API_KEY env var or edit %s (create with 'ankivoice config init')", defaultPath)
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Collection) == "" {
		return errors.New("paths.collection must be set")
	}
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		return errors.New("paths.media_dir must be set")
	}
	return nil
}

func (c *Config) validateElevenLabs() error {
	cfg := c.ElevenLabs
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("elevenlabs.base_url must be an http(s) URL, got %q", cfg.BaseURL)
	}
	if _, err := language.Parse(cfg.LanguageCode); err != nil {
		return fmt.Errorf("elevenlabs.language_code %q is not a valid language tag: %w", cfg.LanguageCode, err)
	}
	if err := ensureUnitRange(map[string]float64{
		"elevenlabs.stability":        cfg.Stability,
		"elevenlabs.similarity_boost": cfg.SimilarityBoost,
		"elevenlabs.style":            cfg.Style,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnnotation() error {
	if c.Annotation.FieldIndex < 0 {
		return errors.New("annotation.field_index must be >= 0")
	}
	prefix := c.Annotation.FilenamePrefix
	if strings.ContainsAny(prefix, `/\`) {
		return errors.New("annotation.filename_prefix must not contain path separators")
	}
	// The prefix ends up inside [sound:...] markers and task list lines.
	if i := strings.IndexFunc(prefix, isReservedPrefixRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(prefix[i:])
		return fmt.Errorf("annotation.filename_prefix must not contain %q", r)
	}
	return nil
}

func isReservedPrefixRune(r rune) bool {
	switch r {
	case '|', '[', ']', '\x1f':
		return true
	}
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

func ensureUnitRange(values map[string]float64) error {
	for key, value := range values {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
