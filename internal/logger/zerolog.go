package logger

import (
	"context"

	"github.com/rs/zerolog"
)

func NewZerolog(log zerolog.Logger) *Zerolog {
	return &Zerolog{log: log}
}

// Zerolog writes through a zerolog.Logger. A logger attached to ctx with
// zerolog's WithContext takes precedence.
type Zerolog struct {
	log zerolog.Logger
}

func (z *Zerolog) from(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != zerolog.DefaultContextLogger && l.GetLevel() != zerolog.Disabled {
		return l
	}

	return &z.log
}

func (z *Zerolog) DebugfCtx(ctx context.Context, template string, args ...any) {
	z.from(ctx).Debug().Msgf(template, args...)
}

func (z *Zerolog) InfofCtx(ctx context.Context, template string, args ...any) {
	z.from(ctx).Info().Msgf(template, args...)
}

func (z *Zerolog) ErrorfCtx(ctx context.Context, template string, args ...any) {
	z.from(ctx).Error().Msgf(template, args...)
}
