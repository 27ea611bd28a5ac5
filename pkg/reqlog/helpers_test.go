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

package reqlog_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/oysterpack/fxlog/pkg/reqlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"regexp"
	"testing"
)

var messagePattern = regexp.MustCompile(`^HTTP [A-Z]+ \S+ responded \d{3} in \d+\.\d{4} ms$`)

type LogEvent map[string]interface{}

func (e LogEvent) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

func decodeLogEvents(t *testing.T, buf *bytes.Buffer) []LogEvent {
	t.Helper()
	var events []LogEvent
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var event LogEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event), scanner.Text())
		events = append(events, event)
	}
	return events
}

func bufferedOptions() (reqlog.Options, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := zerolog.New(buf)
	return reqlog.Options{
		Logger: func() *zerolog.Logger { return &logger },
	}, buf
}

// requestEvents returns the request events, i.e., filters out events logged by handlers
func requestEvents(events []LogEvent) []LogEvent {
	var requestEvents []LogEvent
	for _, event := range events {
		if event.Str(logcfg.SourceContextProperty) == reqlog.SourceContext {
			requestEvents = append(requestEvents, event)
		}
	}
	return requestEvents
}
