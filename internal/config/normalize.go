package config

import (
	"fmt"
	"os"
	"strings"
)

// apiKeyEnvVars lists environment fallbacks for elevenlabs.api_key in lookup order.
var apiKeyEnvVars = []string{"ELEVEN_LABS_API_KEY", "ELEVENLABS_API_KEY"}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeElevenLabs()
	c.normalizeAnnotation()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Collection) == "" {
		c.Paths.Collection = defaultCollectionPath
	}
	if c.Paths.Collection, err = expandPath(c.Paths.Collection); err != nil {
		return fmt.Errorf("paths.collection: %w", err)
	}
	if value, ok := os.LookupEnv("ANKIVOICE_MEDIA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.MediaDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = defaultMediaDir
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TaskList) == "" {
		c.Paths.TaskList = defaultTaskList
	}
	if c.Paths.TaskList, err = expandPath(c.Paths.TaskList); err != nil {
		return fmt.Errorf("paths.task_list: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeElevenLabs() {
	c.ElevenLabs.APIKey = strings.TrimSpace(c.ElevenLabs.APIKey)
	if c.ElevenLabs.APIKey == "" {
		for _, name := range apiKeyEnvVars {
			if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
				c.ElevenLabs.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	c.ElevenLabs.BaseURL = strings.TrimRight(strings.TrimSpace(c.ElevenLabs.BaseURL), "/")
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = defaultBaseURL
	}
	c.ElevenLabs.VoiceName = strings.TrimSpace(c.ElevenLabs.VoiceName)
	if c.ElevenLabs.VoiceName == "" {
		c.ElevenLabs.VoiceName = defaultVoiceName
	}
	c.ElevenLabs.ModelID = strings.TrimSpace(c.ElevenLabs.ModelID)
	if c.ElevenLabs.ModelID == "" {
		c.ElevenLabs.ModelID = defaultModelID
	}
	c.ElevenLabs.LanguageCode = strings.ToLower(strings.TrimSpace(c.ElevenLabs.LanguageCode))
	if c.ElevenLabs.LanguageCode == "" {
		c.ElevenLabs.LanguageCode = defaultLanguageCode
	}
	c.ElevenLabs.OutputFormat = strings.TrimSpace(c.ElevenLabs.OutputFormat)
	if c.ElevenLabs.OutputFormat == "" {
		c.ElevenLabs.OutputFormat = defaultOutputFormat
	}
	if c.ElevenLabs.TimeoutSeconds <= 0 {
		c.ElevenLabs.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeAnnotation() {
	c.Annotation.FilenamePrefix = strings.TrimSpace(c.Annotation.FilenamePrefix)
	if c.Annotation.FilenamePrefix == "" {
		c.Annotation.FilenamePrefix = defaultFilenamePrefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
