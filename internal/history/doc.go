// Package history keeps the append-only operational event log.
//
// Events are persisted newest-first in a single JSON document. Each entry
// carries a time-prefixed unique id, a type from the fixed enum (scan, upload,
// process, transcribe, edit, refine, screenshot, error), a human-readable
// message, and a free-form details payload. Entries are immutable once
// written; the log only supports deleting an entry or clearing everything.
//
// Recording is best-effort by design: a failure to persist an event is logged
// and swallowed so the pipeline operation that produced it still completes.
package history
