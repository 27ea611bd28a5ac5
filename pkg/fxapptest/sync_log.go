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

// Package fxapptest provides support for testing fxapp apps and the logs they produce.
package fxapptest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	"sync"
)

// SyncLog is used to to provide a concurrency safe read/write log.
//
// Use Case: used when inspecting logs in unit tests that have multiple go routines writing to the log concurrently
type SyncLog struct {
	sync.Mutex
	buf *bytes.Buffer
}

// NewSyncLog returns an empty log
func NewSyncLog() *SyncLog {
	return &SyncLog{
		buf: new(bytes.Buffer),
	}
}

func (l *SyncLog) Write(data []byte) (int, error) {
	l.Lock()
	defer l.Unlock()
	return l.buf.Write(data)
}

func (l *SyncLog) String() string {
	l.Lock()
	defer l.Unlock()
	return l.buf.String()
}

// Bytes returns a copy of the log contents
func (l *SyncLog) Bytes() []byte {
	l.Lock()
	defer l.Unlock()
	return append([]byte(nil), l.buf.Bytes()...)
}

// Events decodes the JSON log events. Lines that are not JSON objects are skipped.
func (l *SyncLog) Events() []LogEvent {
	var events []LogEvent
	scanner := bufio.NewScanner(bytes.NewReader(l.Bytes()))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var event LogEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err == nil {
			events = append(events, event)
		}
	}
	return events
}

// EventsOfType returns the events that were logged using the specified event type ID
func (l *SyncLog) EventsOfType(id fxapp.EventTypeID) []LogEvent {
	var events []LogEvent
	for _, event := range l.Events() {
		if event.Str(fxapp.EventTypeIDProperty) == id.String() {
			events = append(events, event)
		}
	}
	return events
}

// LogEvent is a decoded JSON log event
type LogEvent map[string]interface{}

// Str returns the string property value, or "" if the property is not a string
func (e LogEvent) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

// Has returns true if the event has the property
func (e LogEvent) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Dict returns the nested object property, or nil
func (e LogEvent) Dict(key string) LogEvent {
	m, _ := e[key].(map[string]interface{})
	return m
}

// Level returns the event level name
func (e LogEvent) Level() string {
	return e.Str(logcfg.LevelField)
}

// Message returns the event message
func (e LogEvent) Message() string {
	return e.Str(logcfg.MessageField)
}

// UseSyncLog returns a LoggingConfigurer that writes all log events to the log as JSON.
func UseSyncLog(log *SyncLog) fxapp.LoggingConfigurer {
	return func(ctx fxapp.HostContext, config *logcfg.Configuration) error {
		config.
			MinimumLevel(zerolog.TraceLevel).
			Enrich(
				logcfg.WithApplicationName(ctx.AppName()),
				logcfg.WithEnvironment(ctx.Environment),
			).
			WriteTo(logcfg.Writer(log))
		return nil
	}
}
