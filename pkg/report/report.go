// Package report renders substitution statuses for diagnostics output.
package report

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// YAML returns a DocumentStatus or BatchSummary rendered as YAML
func YAML(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	return buf.String(), nil
}

// ModifiedLine is the headline of a debug print
func ModifiedLine(count int) string {
	return fmt.Sprintf("%d file is modified", count)
}

// LogDocument emits the debug print for a single-document run: the
// modified count followed by the variable status map
func LogDocument(logger zerolog.Logger, status *types.DocumentStatus) {
	count := 0
	if status.Modified {
		count = 1
	}
	logStatus(logger, count, status)
}

// LogBatch emits the debug print for a batch run
func LogBatch(logger zerolog.Logger, summary *types.BatchSummary) {
	logStatus(logger, summary.UpdatedCount, summary)
}

func logStatus(logger zerolog.Logger, count int, v interface{}) {
	logger.Info().Msg(ModifiedLine(count))
	out, err := YAML(v)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to render status")
		return
	}
	logger.Info().Msg("Status:\n" + out)
}
