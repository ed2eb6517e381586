package config

const (
	defaultCollectionPath  = "collection.anki21"
	defaultMediaDir        = "~/.local/share/Anki2/User 1/collection.media"
	defaultTaskList        = "czech_audio_list.txt"
	defaultLogDir          = ""
	defaultBaseURL         = "https://api.elevenlabs.io/v1"
	defaultVoiceName       = "George"
	defaultModelID         = "eleven_turbo_v2_5"
	defaultLanguageCode    = "cs"
	defaultOutputFormat    = "mp3_44100_128"
	defaultStability       = 0.5
	defaultSimilarityBoost = 0.8
	defaultStyle           = 0.2
	defaultSpeakerBoost    = true
	defaultTimeoutSeconds  = 60
	defaultFieldIndex      = 4
	defaultFilenamePrefix  = "_czech_frequency_"
	defaultBackup          = true
	defaultDelayMillis     = 1000
	defaultCacheVoice      = true
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Collection: defaultCollectionPath,
			MediaDir:   defaultMediaDir,
			TaskList:   defaultTaskList,
			LogDir:     defaultLogDir,
		},
		ElevenLabs: ElevenLabs{
			BaseURL:         defaultBaseURL,
			VoiceName:       defaultVoiceName,
			ModelID:         defaultModelID,
			LanguageCode:    defaultLanguageCode,
			OutputFormat:    defaultOutputFormat,
			Stability:       defaultStability,
			SimilarityBoost: defaultSimilarityBoost,
			Style:           defaultStyle,
			SpeakerBoost:    defaultSpeakerBoost,
			TimeoutSeconds:  defaultTimeoutSeconds,
		},
		Annotation: Annotation{
			FieldIndex:     defaultFieldIndex,
			FilenamePrefix: defaultFilenamePrefix,
			Backup:         defaultBackup,
		},
		Generation: Generation{
			DelayMillis: defaultDelayMillis,
			CacheVoice:  defaultCacheVoice,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
