// Package media shells out to ffmpeg to derive audio artifacts from source
// videos. The artifact path is deterministic per asset id, so reprocessing a
// video overwrites its previous extraction in place.
package media
