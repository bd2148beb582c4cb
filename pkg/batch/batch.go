// Package batch runs document substitution over a set of documents, one
// at a time, and aggregates the outcome.
package batch

import (
	"github.com/arthur-debert/varsub/pkg/document"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/report"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Orchestrator applies a Substituter across documents sequentially.
// Each document is read, resolved, backed up and written before the next
// one starts.
type Orchestrator struct {
	substituter *document.Substituter
	notifier    types.Notifier
	debug       bool
	logger      zerolog.Logger
	newRunID    func() string
}

// New creates an Orchestrator. When debug is true per-document statuses
// are kept in the summary and logged at the end of the run.
func New(substituter *document.Substituter, notifier types.Notifier, debug bool) *Orchestrator {
	return &Orchestrator{
		substituter: substituter,
		notifier:    notifier,
		debug:       debug,
		logger:      logging.GetLogger("batch"),
		newRunID:    uuid.NewString,
	}
}

// Run substitutes every document in docs, which must already be selected
// and sorted. A failing document is recorded and the batch moves on.
func (o *Orchestrator) Run(docs []types.FileDescriptor, dict variables.Dictionary) *types.BatchSummary {
	summary := types.NewBatchSummary(o.newRunID())
	logger := o.logger.With().Str("run", summary.RunID).Logger()
	sub := o.substituter.WithLogger(logging.GetLogger("document").With().Str("run", summary.RunID).Logger())

	done := logging.LogOperationStart(logger, "batch substitution")
	logger.Info().Int("documents", len(docs)).Int("definitions", len(dict)).Msg("Starting batch")

	for _, doc := range docs {
		status, err := sub.Substitute(doc, dict, false)
		summary.Processed++
		if err != nil {
			summary.Failed[doc.Path] = err.Error()
		} else if status.Modified {
			summary.UpdatedCount++
		}
		if o.debug && status.HasVariables() {
			summary.Documents[doc.Path] = status
		}
	}

	logger.Info().
		Int("processed", summary.Processed).
		Int("updated", summary.UpdatedCount).
		Int("failed", len(summary.Failed)).
		Msg("Batch finished")
	done()

	if summary.UpdatedCount > 0 {
		o.notifier.Notify(document.MsgSubstitutionDone)
	} else {
		o.notifier.Notify(document.MsgNothingUpdated)
	}

	if o.debug {
		report.LogBatch(logger, summary)
	}
	return summary
}
