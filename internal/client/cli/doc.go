// Package cli implements the interactive vaultview client: a small REPL
// over the record, view, attachment, and report services.
package cli
