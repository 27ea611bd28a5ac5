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
	"context"
	"github.com/rs/zerolog"
)

// Property is a log context property
type Property struct {
	Name  string
	Value interface{}
}

type logContextKey struct{}

type logContext struct {
	Property
	parent *logContext
}

// PushProperty returns a copy of ctx that carries the property. Events logged with the returned context, i.e., via
// `logger.Info().Ctx(ctx)` or a logger retrieved with zerolog.Ctx, are enriched with the property when the logger is
// configured with FromLogContext.
//
// A property pushed later replaces an earlier property with the same name.
func PushProperty(ctx context.Context, name string, value interface{}) context.Context {
	parent, _ := ctx.Value(logContextKey{}).(*logContext)
	return context.WithValue(ctx, logContextKey{}, &logContext{
		Property: Property{Name: name, Value: value},
		parent:   parent,
	})
}

// Properties returns the properties carried by the context, in the order they were pushed.
// If a property name was pushed more than once, then only the innermost value is returned.
func Properties(ctx context.Context) []Property {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey{}).(*logContext)
	var stack []Property
	for ; lc != nil; lc = lc.parent {
		stack = append(stack, lc.Property)
	}
	if len(stack) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(stack))
	props := make([]Property, 0, len(stack))
	// innermost first
	for _, prop := range stack {
		if seen[prop.Name] {
			continue
		}
		seen[prop.Name] = true
		props = append(props, prop)
	}
	// reverse to push order
	for i, j := 0, len(props)-1; i < j; i, j = i+1, j-1 {
		props[i], props[j] = props[j], props[i]
	}
	return props
}

// FromLogContext adds the properties pushed onto the event context via PushProperty
func FromLogContext() Enricher {
	return logContextEnricher{}
}

type logContextEnricher struct{}

func (logContextEnricher) Enrich(ctx zerolog.Context) zerolog.Context {
	return ctx
}

func (logContextEnricher) Run(event *zerolog.Event, _ zerolog.Level, _ string) {
	for _, prop := range Properties(event.GetCtx()) {
		addEventProperty(event, prop.Name, prop.Value)
	}
}
