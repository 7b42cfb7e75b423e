// Package store persists the pipeline's JSON documents and serializes access
// to them.
//
// Every persisted document (video registry, event history, per-asset
// transcripts) is human-readable pretty-printed JSON written whole-document at
// a time; there are no partial updates. ReadDocument returns the caller's
// fallback on a missing or malformed file so bootstrap and recovery paths do
// not special-case first runs.
//
// Concurrency: a flock on the library directory keeps a second process away
// from the documents, and Guard provides per-asset in-process mutexes so a
// processing run cannot interleave with a marker insertion on the same asset.
// Operations on different assets proceed independently.
package store
