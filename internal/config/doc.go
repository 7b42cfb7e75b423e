// Package config loads, normalizes, and validates the TOML configuration that
// drives Clipscribe.
//
// Load resolves the config file (explicit path, then the user config dir, then
// a project-local clipscribe.toml), expands ~ in all path fields, applies
// defaults for anything unset, and validates the result. EnsureDirectories
// creates the library, artifact, transcript, and log directories on demand.
//
// Cloud and LLM API keys may also arrive via the CLIPSCRIBE_CLOUD_API_KEY and
// CLIPSCRIBE_LLM_API_KEY environment variables; an absent cloud key simply
// disables the transcription fallback rather than failing validation.
package config
