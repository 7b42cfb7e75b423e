// Package services holds the error taxonomy and context plumbing shared by the
// pipeline components.
//
// Failures are tagged with sentinel markers (not-found, external tool,
// malformed output, validation, configuration) so callers can classify a
// failure with errors.Is without depending on the component that produced it.
// Context helpers carry the asset id, stage name, and correlation id so log
// lines from any depth of the pipeline identify the operation they belong to.
package services
