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
	"github.com/oklog/ulid"
	"github.com/oysterpack/fxlog/pkg/ulids"
	"github.com/rs/zerolog"
	"os"
	"time"
)

// Enricher adds properties to log events.
//
// Enrich is applied once to the root logger context. Enrichers that need per event data also implement zerolog.Hook.
type Enricher interface {
	Enrich(ctx zerolog.Context) zerolog.Context
}

// EnricherFunc is a function Enricher
type EnricherFunc func(ctx zerolog.Context) zerolog.Context

// Enrich implements the Enricher interface
func (f EnricherFunc) Enrich(ctx zerolog.Context) zerolog.Context {
	return f(ctx)
}

// WithProperty adds a property with a fixed value to every event
func WithProperty(name string, value interface{}) Enricher {
	return EnricherFunc(func(ctx zerolog.Context) zerolog.Context {
		return addProperty(ctx, name, value)
	})
}

// WithApplicationName adds the ApplicationName property
func WithApplicationName(name string) Enricher {
	return WithProperty(ApplicationNameProperty, name)
}

// WithEnvironment adds the Environment property
func WithEnvironment(env string) Enricher {
	return WithProperty(EnvironmentProperty, env)
}

// WithMachineName adds the MachineName property. If the host name cannot be determined, then the HOSTNAME env var is
// used.
func WithMachineName() Enricher {
	return EnricherFunc(func(ctx zerolog.Context) zerolog.Context {
		return ctx.Str(MachineNameProperty, machineName())
	})
}

// WithProcessID adds the ProcessId property
func WithProcessID() Enricher {
	return EnricherFunc(func(ctx zerolog.Context) zerolog.Context {
		return ctx.Int(ProcessIDProperty, os.Getpid())
	})
}

// WithDebuggerAttached adds the DebuggerAttached property, which is evaluated when the logger is created
func WithDebuggerAttached() Enricher {
	return EnricherFunc(func(ctx zerolog.Context) zerolog.Context {
		return ctx.Bool(DebuggerAttachedProperty, DebuggerAttached())
	})
}

// WithExceptionDetails logs the stack trace of errors that carry one, i.e., errors created via github.com/pkg/errors.
// The stack is logged using the @xs field.
func WithExceptionDetails() Enricher {
	return EnricherFunc(func(ctx zerolog.Context) zerolog.Context {
		return ctx.Stack()
	})
}

// WithEventID adds a unique EventId to every event. The IDs are monotonic ULIDs.
func WithEventID() Enricher {
	return &eventIDEnricher{newULID: ulids.MonotonicULIDGenerator()}
}

type eventIDEnricher struct {
	newULID func() ulid.ULID
}

func (e *eventIDEnricher) Enrich(ctx zerolog.Context) zerolog.Context {
	return ctx
}

func (e *eventIDEnricher) Run(event *zerolog.Event, _ zerolog.Level, _ string) {
	event.Str(EventIDProperty, e.newULID().String())
}

func machineName() string {
	if name, e := os.Hostname(); e == nil && name != "" {
		return name
	}
	return os.Getenv("HOSTNAME")
}

func addProperty(ctx zerolog.Context, name string, value interface{}) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(name, v)
	case bool:
		return ctx.Bool(name, v)
	case int:
		return ctx.Int(name, v)
	case int64:
		return ctx.Int64(name, v)
	case float64:
		return ctx.Float64(name, v)
	case time.Duration:
		return ctx.Dur(name, v)
	case time.Time:
		return ctx.Time(name, v)
	case error:
		return ctx.AnErr(name, v)
	default:
		return ctx.Interface(name, v)
	}
}

func addEventProperty(event *zerolog.Event, name string, value interface{}) {
	switch v := value.(type) {
	case string:
		event.Str(name, v)
	case bool:
		event.Bool(name, v)
	case int:
		event.Int(name, v)
	case int64:
		event.Int64(name, v)
	case float64:
		event.Float64(name, v)
	case time.Duration:
		event.Dur(name, v)
	case time.Time:
		event.Time(name, v)
	case error:
		event.AnErr(name, v)
	default:
		event.Interface(name, v)
	}
}
