package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	loggerConfig "github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(env string) *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: env},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "wedding",
			Password:        "secret",
			Name:            "wedding_dev",
			SSLMode:         "disable",
			MaxOpenConns:    4,
			MaxIdleConns:    8,
			ConnMaxLifetime: 300,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func TestNewPoolConfig(t *testing.T) {
	logger := zerolog.Nop()

	poolConfig, err := NewPoolConfig(testConfig("production"), &logger, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(4), poolConfig.MaxConns)
	assert.Equal(t, int32(4), poolConfig.MinConns)
	assert.Equal(t, 5*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, "wedding_dev", poolConfig.ConnConfig.Database)

	_, isSlow := poolConfig.ConnConfig.Tracer.(*slowQueryTracer)
	assert.True(t, isSlow)
}

func TestNewPoolConfig_LocalChainsTracers(t *testing.T) {
	logger := zerolog.Nop()

	poolConfig, err := NewPoolConfig(testConfig("local"), &logger, nil)
	require.NoError(t, err)

	chained, ok := poolConfig.ConnConfig.Tracer.(*multiTracer)
	require.True(t, ok)
	require.Len(t, chained.tracers, 2)

	_, isTraceLog := chained.tracers[0].(*tracelog.TraceLog)
	assert.True(t, isTraceLog)
}

func TestNewPoolConfig_NoTracers(t *testing.T) {
	logger := zerolog.Nop()
	cfg := testConfig("production")
	cfg.Observability.Logging.SlowQueryThreshold = 0

	poolConfig, err := NewPoolConfig(cfg, &logger, loggerConfig.NewLoggerService(cfg.Observability))
	require.NoError(t, err)
	assert.Nil(t, poolConfig.ConnConfig.Tracer)
}

func TestSlowQueryTracer(t *testing.T) {
	var poolBuf, reqBuf bytes.Buffer
	poolLog := zerolog.New(&poolBuf)

	now := time.Date(2026, 6, 20, 14, 0, 0, 0, time.UTC)
	tracer := &slowQueryTracer{
		threshold: 100 * time.Millisecond,
		log:       &poolLog,
		now:       func() time.Time { return now },
	}

	// fast query: nothing logged
	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	now = now.Add(10 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, poolBuf.String())

	// slow query without request logger goes to the pool logger
	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	now = now.Add(time.Second)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	assert.Contains(t, poolBuf.String(), "slow query")
	assert.Contains(t, poolBuf.String(), "pg_sleep")

	// slow query with a request logger goes there instead
	reqCtx := loggerConfig.WithContext(context.Background(), zerolog.New(&reqBuf))
	ctx = tracer.TraceQueryStart(reqCtx, nil, pgx.TraceQueryStartData{SQL: "UPDATE invitee"})
	now = now.Add(time.Second)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})
	assert.Contains(t, reqBuf.String(), "UPDATE invitee")
	assert.Contains(t, reqBuf.String(), "boom")
}
