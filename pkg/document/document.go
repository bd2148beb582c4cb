// Package document applies line resolution across one document and decides
// whether the result is written back.
package document

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/varsub/pkg/backup"
	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/report"
	"github.com/arthur-debert/varsub/pkg/resolver"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
	"github.com/rs/zerolog"
)

// lineSeparator is used both to split and to rejoin documents
const lineSeparator = "\n"

// Options controls how a Substituter persists its results
type Options struct {
	// Backup is invoked before batch-mode writes. Nil disables backups.
	Backup *backup.Backup
	// DryRun resolves and reports without backing up or writing
	DryRun bool
	// DebugPrint logs the document status after single-document runs
	DebugPrint bool
}

// Substituter runs substitution for one document at a time
type Substituter struct {
	store    types.DocumentStore
	notifier types.Notifier
	opts     Options
	logger   zerolog.Logger
}

// New creates a Substituter
func New(store types.DocumentStore, notifier types.Notifier, opts Options) *Substituter {
	return &Substituter{
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logging.GetLogger("document"),
	}
}

// WithLogger returns a copy of s that logs through logger
func (s *Substituter) WithLogger(logger zerolog.Logger) *Substituter {
	c := *s
	c.logger = logger
	return &c
}

// Substitute resolves every line of doc against dict. In single-document
// mode the outcome is reported through the notifier; in batch mode only
// per-line problems and failures are. The returned status is never nil.
func (s *Substituter) Substitute(doc types.FileDescriptor, dict variables.Dictionary, single bool) (*types.DocumentStatus, error) {
	logger := s.logger.With().Str("document", doc.Path).Logger()
	status := types.NewDocumentStatus(doc.Path)

	content, err := s.store.ReadText(doc.Path)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read document")
		s.notifier.Notify(fmt.Sprintf(MsgReadFailed, doc.Path))
		return status, errors.Wrapf(err, errors.ErrRead, "failed to read document %s", doc.Path)
	}

	lines := strings.Split(content, lineSeparator)
	for i, line := range lines {
		result := resolver.Resolve(line, i, dict)
		result.Record(status)
		if result.Err != nil {
			s.notifyLineError(logger, doc, result)
			continue
		}
		lines[i] = result.Line
	}

	defer func() {
		if single && s.opts.DebugPrint {
			report.LogDocument(logger, status)
		}
	}()

	switch {
	case status.Modified:
		return status, s.persist(logger, doc, strings.Join(lines, lineSeparator), single)
	case status.HasVariables():
		logger.Debug().Msg("Document already up to date")
		if single {
			s.notifier.Notify(MsgNothingUpdated)
		}
	default:
		logger.Trace().Msg("No markers in document")
		if single {
			s.notifier.Notify(MsgNoVariableFound)
		}
	}
	return status, nil
}

func (s *Substituter) notifyLineError(logger zerolog.Logger, doc types.FileDescriptor, result resolver.Result) {
	message := result.Err.Message
	if errors.IsErrorCode(result.Err, errors.ErrMarkerMismatch) {
		message += fmt.Sprintf(MsgMismatchSuffix, doc.Path)
	}
	logger.Warn().Str("variable", result.Name()).Str("code", string(result.Err.Code)).Msg(message)
	s.notifier.Notify(message)
}

func (s *Substituter) persist(logger zerolog.Logger, doc types.FileDescriptor, content string, single bool) error {
	if s.opts.DryRun {
		logger.Info().Msg("Dry run, skipping write")
		if single {
			s.notifier.Notify(fmt.Sprintf(MsgDryRun, doc.Path))
		}
		return nil
	}

	if !single && s.opts.Backup != nil {
		if _, err := s.opts.Backup.Create(doc); err != nil {
			logger.Error().Err(err).Msg("Backup failed, document left untouched")
			s.notifier.Notify(fmt.Sprintf(MsgBackupFailed, doc.Path))
			return err
		}
	}

	if err := s.store.WriteText(doc.Path, content); err != nil {
		logger.Error().Err(err).Msg("Failed to write document")
		s.notifier.Notify(fmt.Sprintf(MsgWriteFailed, doc.Path))
		return errors.Wrapf(err, errors.ErrWrite, "failed to write document %s", doc.Path)
	}

	logger.Info().Msg("Document updated")
	if single {
		s.notifier.Notify(MsgSubstitutionDone)
	}
	return nil
}
