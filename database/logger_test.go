package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observed(level gormlogger.LogLevel) (gormlogger.Interface, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core), level), logs
}

func query() (string, int64) { return "SELECT 1", 1 }

func TestLogger_Trace(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		level gormlogger.LogLevel
		begin time.Time
		err   error
		want  zapcore.Level
		count int
	}{
		{"failure logs at error", gormlogger.Warn, time.Now(), errors.New("boom"), zapcore.ErrorLevel, 1},
		{"missing row is quiet", gormlogger.Warn, time.Now(), gorm.ErrRecordNotFound, 0, 0},
		{"slow query warns", gormlogger.Warn, time.Now().Add(-time.Second), nil, zapcore.WarnLevel, 1},
		{"fast query hidden at warn", gormlogger.Warn, time.Now(), nil, 0, 0},
		{"fast query shown at info", gormlogger.Info, time.Now(), nil, zapcore.DebugLevel, 1},
		{"silent drops failures", gormlogger.Silent, time.Now(), errors.New("boom"), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := observed(tt.level)

			l.Trace(ctx, tt.begin, query, tt.err)

			entries := logs.All()
			if !assert.Len(t, entries, tt.count) || tt.count == 0 {
				return
			}
			assert.Equal(t, tt.want, entries[0].Level)
			assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
		})
	}
}

func TestLogger_LogModeReturnsCopy(t *testing.T) {
	base, logs := observed(gormlogger.Warn)

	quiet := base.LogMode(gormlogger.Silent)
	quiet.Warn(context.Background(), "hidden %d", 1)
	base.Warn(context.Background(), "shown %d", 2)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "shown 2", entries[0].Message)
	}
}
