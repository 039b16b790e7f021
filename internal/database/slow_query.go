package database

import (
	"context"
	"time"

	loggerConfig "github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer warns about statements that take longer than threshold.
//
// It logs through the request-scoped logger when the query context carries
// one, and falls back to the pool logger otherwise.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
	now       func() time.Time
}

func (t *slowQueryTracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: t.clock(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := t.clock().Sub(start.at)
	if elapsed < t.threshold {
		return
	}

	log := loggerConfig.FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = t.log
	}

	event := log.Warn().
		Str("sql", start.sql).
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Str("command_tag", data.CommandTag.String())
	if data.Err != nil {
		event = event.Err(data.Err)
	}
	event.Msg("slow query")
}
