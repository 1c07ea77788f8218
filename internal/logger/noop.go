package logger

import "context"

type Noop struct{}

func (Noop) DebugfCtx(ctx context.Context, template string, args ...any) {}
func (Noop) InfofCtx(ctx context.Context, template string, args ...any)  {}
func (Noop) ErrorfCtx(ctx context.Context, template string, args ...any) {}
