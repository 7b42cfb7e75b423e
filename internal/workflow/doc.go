// Package workflow orchestrates the per-asset pipeline over the lower
// layers: registry reconciliation, audio extraction, transcription with
// fallback, transcript persistence, and the follow-on operations (markers,
// edits, refinement) against the stored transcript.
//
// Every operation serializes on the asset's guard, carries a correlation id
// through the context, and records its outcome in the event log before
// returning. Failures surface the underlying cause unchanged so callers can
// test against the sentinel error markers.
package workflow
