// Package registry owns the persisted video asset registry and its
// reconciliation against the library directory.
//
// Reconcile is the only writer of asset status: newly discovered files enter
// as the one-scan transient "new", and every later pass recomputes status
// purely from derived-artifact presence (no artifacts -> unprocessed, audio
// only -> audio_ready, both -> ready). Scans never delete entries for files
// that have since been removed.
//
// Asset ids derive deterministically from the file base name without its
// extension. Two files that differ only by extension collide, and the
// reconciler fails the scan loudly rather than letting one silently clobber
// the other's artifacts.
package registry
