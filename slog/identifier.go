package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docpage"
)

// Ensure LoggingIdentifierSource implements docpage.IdentifierSource.
var _ docpage.IdentifierSource = (*LoggingIdentifierSource)(nil)

// LoggingIdentifierSource wraps an IdentifierSource with debug logging of
// each page scan.
type LoggingIdentifierSource struct {
	next   docpage.IdentifierSource
	logger *slog.Logger
}

// NewLoggingIdentifierSource creates a new LoggingIdentifierSource.
func NewLoggingIdentifierSource(next docpage.IdentifierSource, logger *slog.Logger) *LoggingIdentifierSource {
	return &LoggingIdentifierSource{next: next, logger: logger}
}

// Identifiers delegates to the wrapped source and logs the operation.
func (s *LoggingIdentifierSource) Identifiers(ctx context.Context) (raws []docpage.RawIdentifier, err error) {
	defer func(begin time.Time) {
		s.logger.Info("identifier scan",
			"count", len(raws),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Identifiers(ctx)
}
