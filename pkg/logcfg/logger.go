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
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"io"
	"sort"
	"strings"
)

// LoggerFactory creates loggers for a source context
type LoggerFactory interface {
	// ForContext returns a logger tagged with the SourceContext property
	ForContext(source string) *zerolog.Logger
}

// Logger is the root logger created by a Configuration.
type Logger struct {
	logger    zerolog.Logger
	overrides []levelOverride
	closers   []io.Closer
	closed    *atomic.Bool
}

type levelOverride struct {
	source string
	level  zerolog.Level
}

func newLogger(logger zerolog.Logger, overrides map[string]zerolog.Level, closers []io.Closer) *Logger {
	levelOverrides := make([]levelOverride, 0, len(overrides))
	for source, level := range overrides {
		levelOverrides = append(levelOverrides, levelOverride{strings.ToLower(source), level})
	}
	// longest source first
	sort.Slice(levelOverrides, func(i, j int) bool {
		if len(levelOverrides[i].source) == len(levelOverrides[j].source) {
			return levelOverrides[i].source < levelOverrides[j].source
		}
		return len(levelOverrides[i].source) > len(levelOverrides[j].source)
	})
	return &Logger{
		logger:    logger,
		overrides: levelOverrides,
		closers:   closers,
		closed:    atomic.NewBool(false),
	}
}

// Zerolog returns a copy of the root logger
func (l *Logger) Zerolog() *zerolog.Logger {
	logger := l.logger
	return &logger
}

// Zap returns a zap logger that writes to the root logger
func (l *Logger) Zap() *zap.Logger {
	return zap.New(NewZapCore(l.Zerolog()))
}

// ForContext returns a logger tagged with the SourceContext property.
//
// If a level override matches the source, then the logger level is set to the override level. The longest matching
// override wins. Sources are matched case-insensitively on '.' or '/' boundaries, i.e., the override "github.com/labstack"
// matches "github.com/labstack/echo" but not "github.com/labstack2".
func (l *Logger) ForContext(source string) *zerolog.Logger {
	logger := l.logger.With().Str(SourceContextProperty, source).Logger()
	if level, ok := l.overrideLevel(source); ok {
		logger = logger.Level(level)
	}
	return &logger
}

func (l *Logger) overrideLevel(source string) (zerolog.Level, bool) {
	source = strings.ToLower(source)
	for _, override := range l.overrides {
		if !strings.HasPrefix(source, override.source) {
			continue
		}
		if len(source) == len(override.source) {
			return override.level, true
		}
		switch source[len(override.source)] {
		case '.', '/':
			return override.level, true
		}
	}
	return zerolog.NoLevel, false
}

// SetGlobal makes this logger the process-wide logger, i.e., the zerolog `log.Logger` and the go std log output.
func (l *Logger) SetGlobal() {
	log.Logger = l.logger
	UseAsStandardLoggerOutput(&l.logger)
}

// Close closes the sinks. Only the first call has any effect.
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	var e error
	for _, closer := range l.closers {
		e = multierr.Append(e, closer.Close())
	}
	return e
}

// Closed returns true if the logger has been closed
func (l *Logger) Closed() bool {
	return l.closed.Load()
}
