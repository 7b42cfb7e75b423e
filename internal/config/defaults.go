package config

const (
	defaultLibraryDir     = "~/.local/share/clipscribe/videos"
	defaultArtifactDir    = "~/.local/share/clipscribe/audio"
	defaultTranscriptDir  = "~/.local/share/clipscribe/transcripts"
	defaultLogDir         = "~/.local/share/clipscribe/logs"
	defaultWhisperBinary  = "whisper"
	defaultWhisperModel   = "base"
	defaultWhisperOutDir  = "~/.local/share/clipscribe/whisper"
	defaultCloudBaseURL   = "https://api.openai.com/v1"
	defaultCloudModel     = "whisper-1"
	defaultCloudTimeout   = 600
	defaultLLMBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel       = "gpt-4o-mini"
	defaultLLMTimeout     = 120
	defaultToolTimeoutSec = 1800
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:    defaultLibraryDir,
			ArtifactDir:   defaultArtifactDir,
			TranscriptDir: defaultTranscriptDir,
			LogDir:        defaultLogDir,
		},
		Whisper: Whisper{
			Binary:    defaultWhisperBinary,
			Model:     defaultWhisperModel,
			OutputDir: defaultWhisperOutDir,
		},
		Cloud: Cloud{
			BaseURL:        defaultCloudBaseURL,
			Model:          defaultCloudModel,
			TimeoutSeconds: defaultCloudTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Workflow: Workflow{
			ToolTimeoutSeconds: defaultToolTimeoutSec,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
