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
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"io"
)

// Configuration is used to build a Logger.
//
// Methods are chainable. Problems are accumulated and reported by Err and CreateLogger.
type Configuration struct {
	minimumLevel zerolog.Level
	overrides    map[string]zerolog.Level
	enrichers    []Enricher
	sinks        []Sink
	err          error
}

// New returns a new Configuration with the minimum level set to info and no sinks.
func New() *Configuration {
	return &Configuration{
		minimumLevel: zerolog.InfoLevel,
		overrides:    make(map[string]zerolog.Level),
	}
}

// MinimumLevel sets the minimum level for log events
func (c *Configuration) MinimumLevel(level zerolog.Level) *Configuration {
	c.minimumLevel = level
	return c
}

// Override sets the minimum level for loggers whose source context is, or is nested within, source.
func (c *Configuration) Override(source string, level zerolog.Level) *Configuration {
	if e := guard.NotEmpty(source, "source"); e != nil {
		c.err = multierr.Append(c.err, InvalidConfigurationErr.CausedBy(e))
		return c
	}
	c.overrides[source] = level
	return c
}

// Enrich adds enrichers, which are applied in order
func (c *Configuration) Enrich(enrichers ...Enricher) *Configuration {
	for _, enricher := range enrichers {
		if e := guard.NotNil(enricher, "enricher"); e != nil {
			c.err = multierr.Append(c.err, InvalidConfigurationErr.CausedBy(e))
			continue
		}
		c.enrichers = append(c.enrichers, enricher)
	}
	return c
}

// WriteTo adds sinks. Every log event that passes the minimum level is written to each sink whose own minimum level
// it also passes.
func (c *Configuration) WriteTo(sinks ...Sink) *Configuration {
	for _, sink := range sinks {
		if e := guard.NotNil(sink, "sink"); e != nil {
			c.err = multierr.Append(c.err, InvalidConfigurationErr.CausedBy(e))
			continue
		}
		c.sinks = append(c.sinks, sink)
	}
	return c
}

// ReadFrom applies the configuration section. A nil section is ignored.
func (c *Configuration) ReadFrom(section *viper.Viper) *Configuration {
	if section == nil {
		return c
	}
	if e := readSection(c, section); e != nil {
		c.err = multierr.Append(c.err, e)
	}
	return c
}

// Err returns the problems found so far
func (c *Configuration) Err() error {
	return c.err
}

// CreateLogger opens the sinks and creates the logger.
// If any sink fails to open, then the sinks that were already opened are closed.
func (c *Configuration) CreateLogger() (*Logger, error) {
	if c.err != nil {
		return nil, c.err
	}

	writers := make([]io.Writer, 0, len(c.sinks))
	var closers []io.Closer
	for _, sink := range c.sinks {
		w, e := sink.Open()
		if e != nil {
			for _, closer := range closers {
				e = multierr.Append(e, closer.Close())
			}
			return nil, SinkOpenErr.CausedBy(e)
		}
		if closer, ok := w.(io.Closer); ok {
			closers = append(closers, closer)
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: levelWriter(w),
			Level:  sink.Level(),
		})
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	ctx := zerolog.New(out).With().Timestamp()
	var hooks []zerolog.Hook
	for _, enricher := range c.enrichers {
		ctx = enricher.Enrich(ctx)
		if hook, ok := enricher.(zerolog.Hook); ok {
			hooks = append(hooks, hook)
		}
	}
	logger := ctx.Logger().Level(c.minimumLevel)
	for _, hook := range hooks {
		logger = logger.Hook(hook)
	}

	return newLogger(logger, c.overrides, closers), nil
}

func levelWriter(w io.Writer) zerolog.LevelWriter {
	if lw, ok := w.(zerolog.LevelWriter); ok {
		return lw
	}
	return zerolog.LevelWriterAdapter{Writer: w}
}
