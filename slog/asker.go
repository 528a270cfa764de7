package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awray/docmap"
)

// Ensure LoggingAsker implements docmap.Asker.
var _ docmap.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with operational logging.
type LoggingAsker struct {
	next   docmap.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next docmap.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (answer *docmap.Answer, err error) {
	defer func(begin time.Time) {
		sources := 0
		if answer != nil {
			sources = len(answer.Sources)
		}
		a.logger.Info("ask",
			"question", question,
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question)
}
