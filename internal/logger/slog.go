package logger

import (
	"context"
	"fmt"
	"log/slog"
)

func NewSlog(log *slog.Logger) *Slog {
	return &Slog{log: log}
}

type Slog struct {
	log *slog.Logger
}

func (s *Slog) DebugfCtx(ctx context.Context, template string, args ...any) {
	s.log.DebugContext(ctx, fmt.Sprintf(template, args...))
}

func (s *Slog) InfofCtx(ctx context.Context, template string, args ...any) {
	s.log.InfoContext(ctx, fmt.Sprintf(template, args...))
}

func (s *Slog) ErrorfCtx(ctx context.Context, template string, args ...any) {
	s.log.ErrorContext(ctx, fmt.Sprintf(template, args...))
}
