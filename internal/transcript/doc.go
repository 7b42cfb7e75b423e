// Package transcript defines the persisted transcript document: the segment
// timeline produced by a transcription engine plus the markers layered onto
// it afterwards. Documents are whole-file values; callers read, mutate, and
// write them back through the store.
package transcript
