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
	"go.uber.org/fx/fxevent"
	"strings"
)

// fxLogger routes fx events to zerolog. Successful events are logged at debug level, failures at error level.
type fxLogger struct {
	logger *zerolog.Logger
}

var _ fxevent.Logger = (*fxLogger)(nil)

func (l *fxLogger) logEvent(err error) *zerolog.Event {
	if err != nil {
		return l.logger.Error().Err(err)
	}
	return l.logger.Debug()
}

// LogEvent implements the fxevent.Logger interface
func (l *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug().
			Str("Callee", e.FunctionName).
			Str("Caller", e.CallerName).
			Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		l.logEvent(e.Err).
			Str("Callee", e.FunctionName).
			Str("Caller", e.CallerName).
			Dur("Runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuting:
		l.logger.Debug().
			Str("Callee", e.FunctionName).
			Str("Caller", e.CallerName).
			Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		l.logEvent(e.Err).
			Str("Callee", e.FunctionName).
			Str("Caller", e.CallerName).
			Dur("Runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Supplied:
		l.logEvent(e.Err).
			Str("Type", e.TypeName).
			Str("Module", e.ModuleName).
			Msg("supplied")
	case *fxevent.Provided:
		l.logEvent(e.Err).
			Str("Constructor", e.ConstructorName).
			Str("Types", strings.Join(e.OutputTypeNames, ",")).
			Str("Module", e.ModuleName).
			Msg("provided")
	case *fxevent.Replaced:
		l.logEvent(e.Err).
			Str("Types", strings.Join(e.OutputTypeNames, ",")).
			Str("Module", e.ModuleName).
			Msg("replaced")
	case *fxevent.Decorated:
		l.logEvent(e.Err).
			Str("Decorator", e.DecoratorName).
			Str("Types", strings.Join(e.OutputTypeNames, ",")).
			Str("Module", e.ModuleName).
			Msg("decorated")
	case *fxevent.Invoking:
		l.logger.Debug().
			Str("Function", e.FunctionName).
			Str("Module", e.ModuleName).
			Msg("invoking")
	case *fxevent.Invoked:
		l.logEvent(e.Err).
			Str("Function", e.FunctionName).
			Str("Module", e.ModuleName).
			Msg("invoked")
	case *fxevent.Stopping:
		l.logger.Debug().
			Str("Signal", strings.ToUpper(e.Signal.String())).
			Msg("received signal")
	case *fxevent.Stopped:
		l.logEvent(e.Err).Msg("stopped")
	case *fxevent.RollingBack:
		l.logger.Error().Err(e.StartErr).Msg("start failed, rolling back")
	case *fxevent.RolledBack:
		l.logEvent(e.Err).Msg("rolled back")
	case *fxevent.Started:
		l.logEvent(e.Err).Msg("started")
	case *fxevent.LoggerInitialized:
		l.logEvent(e.Err).
			Str("Constructor", e.ConstructorName).
			Msg("initialized custom fxevent.Logger")
	}
}
