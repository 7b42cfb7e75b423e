// Package refine rewrites transcript segments through an OpenAI-compatible
// chat-completion endpoint. The model receives the full segment timeline and
// an editing instruction, and must answer with the rewritten timeline as JSON.
// Responses are applied verbatim; only transient HTTP failures are retried.
package refine
