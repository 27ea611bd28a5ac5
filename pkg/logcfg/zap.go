/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logcfg

import (
	"github.com/rs/zerolog"
	"go.uber.org/zap/zapcore"
	"sort"
)

// NewZapCore returns a zapcore.Core that writes zap log entries to the zerolog logger.
//
// It is used to route libraries that log via zap through the zerolog pipeline. The zap logger name is logged as the
// SourceContext.
func NewZapCore(logger *zerolog.Logger) zapcore.Core {
	return &zapCore{logger: logger}
}

type zapCore struct {
	logger *zerolog.Logger
	fields []zapcore.Field
}

func (c *zapCore) Enabled(level zapcore.Level) bool {
	zlevel := zerologLevel(level)
	return zlevel >= c.logger.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &zapCore{
		logger: c.logger,
		fields: make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *zapCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *zapCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(enc)
	}
	for _, field := range fields {
		field.AddTo(enc)
	}

	event := c.logger.WithLevel(zerologLevel(entry.Level))
	if entry.LoggerName != "" {
		event.Str(SourceContextProperty, entry.LoggerName)
	}
	keys := make([]string, 0, len(enc.Fields))
	for key := range enc.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		addEventProperty(event, key, enc.Fields[key])
	}
	event.Msg(entry.Message)
	return nil
}

func (c *zapCore) Sync() error {
	return nil
}

func zerologLevel(level zapcore.Level) zerolog.Level {
	switch level {
	case zapcore.DebugLevel:
		return zerolog.DebugLevel
	case zapcore.InfoLevel:
		return zerolog.InfoLevel
	case zapcore.WarnLevel:
		return zerolog.WarnLevel
	case zapcore.ErrorLevel:
		return zerolog.ErrorLevel
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return zerolog.PanicLevel
	case zapcore.FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.NoLevel
	}
}
