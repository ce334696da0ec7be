package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query log through the context logger.
type GormLogger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
}

func NewGormLogger(slowThreshold time.Duration) *GormLogger {
	return &GormLogger{SlowThreshold: slowThreshold, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		CtxInfo(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		CtxWarn(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		CtxError(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, _ := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		logQuery(ctx, sql, elapsed, err)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		CtxWarn(ctx, "slow query", "query", sql, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		logQuery(ctx, sql, elapsed, nil)
	}
}

func logQuery(ctx context.Context, query string, duration time.Duration, err error) {
	fields := []any{
		"query", query,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		CtxWithError(ctx, "database operation failed", err, fields...)
		return
	}
	CtxDebug(ctx, "database operation", fields...)
}
