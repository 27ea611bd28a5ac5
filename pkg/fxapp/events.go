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

package fxapp

import (
	"github.com/rs/zerolog"
	"os"
	"reflect"
	"time"
)

// event property names
const (
	EventTypeIDProperty = "EventTypeId"
	TagsProperty        = "Tags"
)

// EventTypeID is used as an event type ID.
// It must be globally unique - ULIDs are recommended.
type EventTypeID string

func (e EventTypeID) String() string {
	return string(e)
}

// LogEventer is a function used to log events.
type LogEventer func(eventData zerolog.LogObjectMarshaler, msg string, tags ...string)

// NewLogEventer creates a new function used to log events using a standardized structure, e.g., app event
//
//	{
//	  "@l": "Error", ------------------------------------------ event level
//	  "EventTypeId": "01DE2Z4E07E4T0GJJXCG8NN6A0", ------------ event type ID
//	  "01DE2Z4E07E4T0GJJXCG8NN6A0": { ------------------------- event type ID is used as event object dictionary key (optional)
//		"Addr": ":8008" ----------------------------------------- event object data (optional)
//	  },
//	  "Tags": ["tag-a","tag-b"], ------------------------------ event tags (optional)
//	  "@t": "2026-10-19T10:00:00.123Z",
//	  "@m": "HTTP server failed" ------------------------------ event short description
//	}
func (e EventTypeID) NewLogEventer(logger *zerolog.Logger, level zerolog.Level) LogEventer {
	eventLogger := logger.With().Str(EventTypeIDProperty, e.String()).Logger()
	return func(eventObject zerolog.LogObjectMarshaler, msg string, tags ...string) {
		event := eventLogger.WithLevel(level)

		if eventObject != nil {
			event.Dict(e.String(), zerolog.Dict().EmbedObject(eventObject))
		}

		if len(tags) > 0 {
			event.Strs(TagsProperty, tags)
		}

		event.Msg(msg)
	}
}

// app lifecycle event IDs
const (
	// 	type Data struct {
	//		StartTimeout time.Duration
	//		StopTimeout  time.Duration
	//		Provides     []string
	//		Invokes      []string
	//	}
	InitializedEventID EventTypeID = "01DE4STZ0S24RG7R08PAY1RQX3"

	StartingEventID EventTypeID = "01DE4SXMG8W3KSPZ9FNZ8Z17F8"
	// 	type Data struct {
	//		Err string `json:"@x"`
	//	}
	StartFailedEventID EventTypeID = "01DE4SY6RYCD0356KYJV7G7THW"

	// 	type Data struct {
	//		Duration time.Duration
	//	}
	StartedEventID EventTypeID = "01DE4X10QCV1M8TKRNXDK6AK7C"

	// 	type Data struct {
	//		Signal string
	//	}
	StoppingEventID EventTypeID = "01DE4SZ1KY60JQTF7XP4DQ8WGC"
	// 	type Data struct {
	//		Err string `json:"@x"`
	//	}
	StopFailedEventID EventTypeID = "01DE4T0W35RPD6QMDS42WQXR48"

	// 	type Data struct {
	//		Duration time.Duration
	//	}
	StoppedEventID EventTypeID = "01DE4T1V9N50BB67V424S6MG5C"
)

// AppInitialized indicates the application has successfully initialized
type AppInitialized struct {
	App
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (event AppInitialized) MarshalZerologObject(e *zerolog.Event) {
	e.Dur("StartTimeout", event.StartTimeout())
	e.Dur("StopTimeout", event.StopTimeout())

	typeNames := func(types []reflect.Type) []string {
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, t.String())
		}
		return names
	}

	e.Strs("Provides", typeNames(event.App.ConstructorTypes()))
	e.Strs("Invokes", typeNames(event.App.FuncTypes()))
	e.Str("Environment", event.HostContext().Environment)
	e.Str("InstanceId", event.InstanceID().String())
	if desc := event.Desc(); desc != nil {
		e.Str("Version", desc.Version().String())
	}
	if buildInfo, err := ReadBuildInfo(); err == nil {
		e.Object("Build", buildInfo)
	}
}

// AppStarted indicates the app has successfully been started.
type AppStarted struct {
	time.Duration
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (event AppStarted) MarshalZerologObject(e *zerolog.Event) {
	e.Dur("Duration", event.Duration)
}

// AppStopping indicates the app has been triggered to shutdown.
type AppStopping struct {
	os.Signal
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (event AppStopping) MarshalZerologObject(e *zerolog.Event) {
	if event.Signal != nil {
		e.Str("Signal", event.Signal.String())
	}
}

// AppStopped indicates that the app has been stopped.
// This will always be logged, regardless whether the app failed to shutdown cleanly or not, i.e., if an error occurs
// while shutting down the app, then both the AppStopFailed and AppStopped events will be logged.
type AppStopped struct {
	time.Duration
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (event AppStopped) MarshalZerologObject(e *zerolog.Event) {
	e.Dur("Duration", event.Duration)
}

// AppFailed indicates the application failed to start or stop cleanly
type AppFailed struct {
	Err error
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (event AppFailed) MarshalZerologObject(e *zerolog.Event) {
	e.Err(event.Err)
}
