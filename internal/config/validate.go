package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.ArtifactDir == "" {
		return errors.New("paths.artifact_dir must be set")
	}
	if c.Paths.TranscriptDir == "" {
		return errors.New("paths.transcript_dir must be set")
	}
	if c.Paths.ArtifactDir == c.Paths.LibraryDir {
		return errors.New("paths.artifact_dir must differ from paths.library_dir")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if c.Whisper.Binary == "" {
		return errors.New("whisper.binary must be set")
	}
	if c.Whisper.Model == "" {
		return errors.New("whisper.model must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
