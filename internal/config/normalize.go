package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisper()
	c.normalizeCloud()
	c.normalizeLLM()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.ArtifactDir, err = expandPath(c.Paths.ArtifactDir); err != nil {
		return fmt.Errorf("paths.artifact_dir: %w", err)
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if strings.TrimSpace(c.Whisper.OutputDir) == "" {
		c.Whisper.OutputDir = defaultWhisperOutDir
	}
	if expanded, err := expandPath(c.Whisper.OutputDir); err == nil {
		c.Whisper.OutputDir = expanded
	}
}

func (c *Config) normalizeCloud() {
	if c.Cloud.APIKey == "" {
		if value, ok := os.LookupEnv("CLIPSCRIBE_CLOUD_API_KEY"); ok {
			c.Cloud.APIKey = value
		}
	}
	c.Cloud.APIKey = strings.TrimSpace(c.Cloud.APIKey)
	c.Cloud.BaseURL = strings.TrimSpace(c.Cloud.BaseURL)
	if c.Cloud.BaseURL == "" {
		c.Cloud.BaseURL = defaultCloudBaseURL
	}
	c.Cloud.Model = strings.TrimSpace(c.Cloud.Model)
	if c.Cloud.Model == "" {
		c.Cloud.Model = defaultCloudModel
	}
	if c.Cloud.TimeoutSeconds <= 0 {
		c.Cloud.TimeoutSeconds = defaultCloudTimeout
	}
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("CLIPSCRIBE_LLM_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.ToolTimeoutSeconds <= 0 {
		c.Workflow.ToolTimeoutSeconds = defaultToolTimeoutSec
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
