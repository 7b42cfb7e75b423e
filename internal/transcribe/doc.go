// Package transcribe provides a uniform interface over the two transcription
// backends and the fallback policy between them.
//
// The local engine shells out to the whisper binary with a fixed model and
// JSON output format, then parses the result file it writes. The cloud engine
// uploads the audio bytes to the provider's speech-to-text endpoint and
// requests the segmented response shape. Both coerce their output into the
// same {start, end, text} sequence: malformed numbers default to 0, text is
// trimmed, and output with no segment breakdown becomes a single synthesized
// segment ending at SentinelEnd.
//
// The Adapter is the failure-isolation boundary: it runs the primary engine,
// falls back to the cloud engine only when credentials are configured, and
// records every transition in the event log. That log is the only audit trail
// of which engine actually produced a given transcript.
package transcribe
