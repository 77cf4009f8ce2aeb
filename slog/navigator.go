package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/docpage"
)

// Ensure LoggingNavigator implements docpage.Navigator.
var _ docpage.Navigator = (*LoggingNavigator)(nil)

// LoggingNavigator wraps a Navigator with debug logging.
type LoggingNavigator struct {
	next   docpage.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next docpage.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Navigate delegates to the wrapped navigator and logs the anchor.
func (n *LoggingNavigator) Navigate(ctx context.Context, anchor string) (err error) {
	defer func() {
		n.logger.Info("navigate", "anchor", anchor, "err", err)
	}()
	return n.next.Navigate(ctx, anchor)
}
