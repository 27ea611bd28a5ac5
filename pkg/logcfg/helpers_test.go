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

package logcfg_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"testing"
)

type LogEvent map[string]interface{}

func (e LogEvent) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

func (e LogEvent) Has(key string) bool {
	_, ok := e[key]
	return ok
}

func decodeLogEvents(t *testing.T, buf *bytes.Buffer) []LogEvent {
	t.Helper()
	var events []LogEvent
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var event LogEvent
		if e := json.Unmarshal(scanner.Bytes(), &event); e != nil {
			t.Fatalf("*** invalid log event JSON: %v : %s", e, scanner.Text())
		}
		events = append(events, event)
	}
	return events
}

// newBufferedLogger creates the logger with a sink that writes to the returned buffer
func newBufferedLogger(t *testing.T, config *logcfg.Configuration) (*logcfg.Logger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	logger, e := config.WriteTo(logcfg.Writer(buf)).CreateLogger()
	if e != nil {
		t.Fatalf("*** failed to create logger: %v", e)
	}
	t.Cleanup(func() {
		logger.Close()
	})
	return logger, buf
}
