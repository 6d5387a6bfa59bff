// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	tlog "github.com/opentracing/opentracing-go/log"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLogMaxSize is the default size of a log file in MB.
	DefaultLogMaxSize = 300
	// DefaultLogFormat is the default format of the log.
	DefaultLogFormat = "text"
)

// Field names shared by the planner logs.
const (
	LogFieldCategory = "category"
	LogFieldRule     = "rule"
)

// FileLogConfig is the toml form of the log file settings.
type FileLogConfig struct {
	log.FileLogConfig
}

// NewFileLogConfig returns file settings rotating at maxSize MB.
func NewFileLogConfig(maxSize uint) FileLogConfig {
	return FileLogConfig{FileLogConfig: log.FileLogConfig{MaxSize: int(maxSize)}}
}

// LogConfig is the toml form of the logger settings.
type LogConfig struct {
	log.Config
}

// NewLogConfig builds a LogConfig.
func NewLogConfig(level, format string, file FileLogConfig, disableTimestamp bool) *LogConfig {
	return &LogConfig{Config: log.Config{
		Level:            level,
		Format:           format,
		DisableTimestamp: disableTimestamp,
		File:             file.FileLogConfig,
	}}
}

// InitLogger replaces the global logger by one built from cfg. Stack
// traces are only attached to fatal entries.
func InitLogger(cfg *LogConfig, opts ...zap.Option) error {
	opts = append(opts, zap.AddStacktrace(zapcore.FatalLevel))
	gl, props, err := log.InitLogger(&cfg.Config, opts...)
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(gl, props)
	return nil
}

type ctxLogKeyType struct{}

var ctxLogKey = ctxLogKeyType{}

// Logger returns the logger attached to ctx, or the global one.
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLogKey).(*zap.Logger); ok {
		return l
	}
	return log.L()
}

// BgLogger returns the global logger.
func BgLogger() *zap.Logger {
	return log.L()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLogKey, logger)
}

// WithCategory tags every entry logged through ctx with category.
func WithCategory(ctx context.Context, category string) context.Context {
	return WithFields(ctx, zap.String(LogFieldCategory, category))
}

// WithFields tags every entry logged through ctx with fields.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	return WithLogger(ctx, Logger(ctx).With(fields...))
}

// TraceEventKey is the span log key events are recorded under.
const TraceEventKey = "event"

// spanOf returns the span of ctx when it is backed by a tracer.
func spanOf(ctx context.Context) opentracing.Span {
	if span := opentracing.SpanFromContext(ctx); span != nil && span.Tracer() != nil {
		return span
	}
	return nil
}

// Eventf logs a formatted event on the span of ctx, if any.
func Eventf(ctx context.Context, format string, args ...any) {
	if span := spanOf(ctx); span != nil {
		span.LogFields(tlog.String(TraceEventKey, fmt.Sprintf(format, args...)))
	}
}

// SetTag tags the span of ctx, if any.
func SetTag(ctx context.Context, key string, value any) {
	if span := spanOf(ctx); span != nil {
		span.SetTag(key, value)
	}
}
