// Command clipscribe is the CLI over the transcription pipeline: scanning the
// video library, processing individual videos, and working with the resulting
// transcripts and event history.
package main
