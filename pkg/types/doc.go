// Package types defines the core types and interfaces used throughout varsub.
// This includes the DocumentStore and Notifier interfaces the engine consumes
// from its host, and the status records produced by a substitution run:
// VariableStatus, DocumentStatus and BatchSummary.
package types
