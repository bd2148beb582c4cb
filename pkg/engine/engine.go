// Package engine is the entry point for substitution runs. It checks the
// definitions source, loads the dictionary once per run and drives either
// single-document mode or batch mode.
package engine

import (
	"fmt"

	"github.com/arthur-debert/varsub/pkg/backup"
	"github.com/arthur-debert/varsub/pkg/batch"
	"github.com/arthur-debert/varsub/pkg/config"
	"github.com/arthur-debert/varsub/pkg/document"
	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
	"github.com/rs/zerolog"
)

// Options are the settings a run depends on
type Options struct {
	VariableFile string
	DebugPrint   bool
	BackupEnable bool
	BackupFolder string
	Extensions   []string
	Recursive    bool
	DryRun       bool
}

// OptionsFromConfig maps the loaded configuration onto run options
func OptionsFromConfig(cfg *config.Config, dryRun bool) Options {
	return Options{
		VariableFile: cfg.VariableFile,
		DebugPrint:   cfg.DebugPrint,
		BackupEnable: cfg.BackupEnable,
		BackupFolder: cfg.BackupFolder,
		Extensions:   cfg.Extensions,
		Recursive:    cfg.Recursive,
		DryRun:       dryRun,
	}
}

// Engine runs substitutions against one store
type Engine struct {
	store    types.DocumentStore
	notifier types.Notifier
	opts     Options
	logger   zerolog.Logger
}

// New creates an Engine
func New(store types.DocumentStore, notifier types.Notifier, opts Options) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logging.GetLogger("engine"),
	}
}

// SubstituteDocument runs single-document mode on path
func (e *Engine) SubstituteDocument(path string) (*types.DocumentStatus, error) {
	dict, err := e.loadDictionary()
	if err != nil {
		return nil, err
	}

	doc := types.NewFileDescriptor(path)
	if doc.Path == e.variableFile() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is the variable file", doc.Path)
	}

	e.logger.Info().Str("document", doc.Path).Msg("Substituting document")
	return e.substituter().Substitute(doc, dict, true)
}

// SubstituteAll runs batch mode over every selected document in the store
func (e *Engine) SubstituteAll() (*types.BatchSummary, error) {
	dict, err := e.loadDictionary()
	if err != nil {
		return nil, err
	}

	files, err := e.store.ListFiles(e.opts.Recursive)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to list documents")
		e.notifier.Notify(MsgListFailed)
		return nil, errors.Wrap(err, errors.ErrList, "failed to list documents")
	}

	docs := batch.Select(files, batch.Selection{
		Extensions:   e.opts.Extensions,
		VariableFile: e.opts.VariableFile,
		BackupFolder: e.opts.BackupFolder,
	})
	e.logger.Debug().Int("listed", len(files)).Int("selected", len(docs)).Msg("Selected documents")

	return batch.New(e.substituter(), e.notifier, e.opts.DebugPrint).Run(docs, dict), nil
}

// loadDictionary enforces the run preconditions: the definitions source
// exists, is readable and holds at least one definition
func (e *Engine) loadDictionary() (variables.Dictionary, error) {
	path := e.variableFile()

	if path == "" || !e.store.Exists(path) {
		e.logger.Error().Str("variable_file", path).Msg("Variable file not found")
		e.notifier.Notify(fmt.Sprintf(MsgVariableFileNotFound, path))
		return nil, errors.Newf(errors.ErrPrecondition, "variable file not found: %s", path).
			WithDetail("path", path)
	}

	dict, err := variables.Load(e.store, path)
	if err != nil {
		e.notifier.Notify(fmt.Sprintf(MsgVariableFileUnread, path))
		return nil, err
	}

	if len(dict) == 0 {
		e.logger.Error().Str("variable_file", path).Msg("No definitions found")
		e.notifier.Notify(fmt.Sprintf(MsgNoDefinitions, path))
		return nil, errors.Newf(errors.ErrPrecondition, "no definitions found in %s", path).
			WithDetail("path", path)
	}
	return dict, nil
}

func (e *Engine) variableFile() string {
	if e.opts.VariableFile == "" {
		return ""
	}
	return types.NewFileDescriptor(e.opts.VariableFile).Path
}

func (e *Engine) substituter() *document.Substituter {
	opts := document.Options{
		DryRun:     e.opts.DryRun,
		DebugPrint: e.opts.DebugPrint,
	}
	if e.opts.BackupEnable {
		opts.Backup = backup.New(e.store, e.opts.BackupFolder)
	}
	return document.New(e.store, e.notifier, opts)
}
