// Package readme holds the pure text transforms of README generation: the
// basic-mode template, extraction of the document from a workflow envelope,
// and removal of characters that do not survive constrained character sets.
package readme
