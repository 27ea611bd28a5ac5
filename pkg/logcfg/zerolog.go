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
	"fmt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"strings"
	"time"
)

// standard log event field names
const (
	TimestampField  = "@t"
	LevelField      = "@l"
	MessageField    = "@m"
	ErrorField      = "@x"
	ErrorStackField = "@xs"
)

// standard log event property names
const (
	SourceContextProperty    = "SourceContext"
	ApplicationNameProperty  = "ApplicationName"
	MachineNameProperty      = "MachineName"
	EnvironmentProperty      = "Environment"
	DebuggerAttachedProperty = "DebuggerAttached"
	ProcessIDProperty        = "ProcessId"
	EventIDProperty          = "EventId"
)

func init() {
	zerolog.TimestampFieldName = TimestampField
	zerolog.LevelFieldName = LevelField
	zerolog.MessageFieldName = MessageField
	zerolog.ErrorFieldName = ErrorField
	zerolog.ErrorStackFieldName = ErrorStackField

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = false

	zerolog.LevelFieldMarshalFunc = LevelName
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

var levelNames = map[zerolog.Level]string{
	zerolog.TraceLevel: "Verbose",
	zerolog.DebugLevel: "Debug",
	zerolog.InfoLevel:  "Information",
	zerolog.WarnLevel:  "Warning",
	zerolog.ErrorLevel: "Error",
	zerolog.FatalLevel: "Fatal",
	zerolog.PanicLevel: "Panic",
}

var levelAbbreviations = map[zerolog.Level]string{
	zerolog.TraceLevel: "VRB",
	zerolog.DebugLevel: "DBG",
	zerolog.InfoLevel:  "INF",
	zerolog.WarnLevel:  "WRN",
	zerolog.ErrorLevel: "ERR",
	zerolog.FatalLevel: "FTL",
	zerolog.PanicLevel: "PNC",
}

// LevelName returns the name used to log the level
func LevelName(level zerolog.Level) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return level.String()
}

// ParseLevel parses both the logged level names, e.g., "Information", "Warning", and the zerolog level names, e.g.,
// "info", "warn". Parsing is case-insensitive.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "verbose", "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "information", "info":
		return zerolog.InfoLevel, nil
	case "warning", "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "panic":
		return zerolog.PanicLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, errors.Errorf("unknown log level: %q", level)
}

func levelAbbreviation(level zerolog.Level) string {
	if abbr, ok := levelAbbreviations[level]; ok {
		return abbr
	}
	return fmt.Sprintf("%3.3s", strings.ToUpper(level.String()))
}
