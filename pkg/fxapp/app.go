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
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"os"
	"reflect"
	"time"
)

// App represents a functional application container, leveraging fx (https://godoc.org/go.uber.org/fx) as the underlying
// framework. Functional means, the application behavior is defined via functions.
//
// The application transitions through the following lifecycle states:
//  1. Initialized
//  2. Starting
//  3. Started
//  4. Stopping
//  5. Done
//
// When building an application, functions are registered which specify how to:
//   - initialize the application
//   - register services that are bound to the application life cycle, via `fx.Lifecycle` (https://godoc.org/go.uber.org/fx#Lifecycle)
//
// Function arguments are provided via dependency injection by registering provider constructor functions with the application.
// Provider constructor functions are lazily invoked when needed inject function dependencies.
//
// # Application Logging
//
// Zerolog (https://godoc.org/github.com/rs/zerolog) is used as the structured JSON logging framework. The app logger is
// created from a logcfg.Configuration when the app is built (see AppBuilder.UseLogging). The logger is closed when the
// app is stopped. fx events are logged at debug level using the "fx" SourceContext.
//
// # HTTP server support
//
// If HTTPHandler(s) are discovered, i.e., they have been provided, then the app will run an HTTP server.
// HTTP server settings can be provided via an *http.Server named "http.Server" (NOTE: http.Server.Handler will be
// overwritten using http handlers that are provided by the app). If no *http.Server is discovered, then the app will
// automatically create an HTTP server with the following settings:
//   - Addr:              ":8008",
//   - ReadHeaderTimeout: time.Second,
//   - MaxHeaderBytes:    1024,
//
// # Automatically Provided
//   - HostContext
//   - Desc - nil if the app was built without a descriptor
//   - InstanceID
//   - *viper.Viper - the app configuration
//   - *logcfg.Logger
//   - *zerolog.Logger
//   - logcfg.LoggerFactory
//   - *zap.Logger
//   - fx.Lifecycle - for components to use to bind to the app lifecycle
//   - fx.Shutdowner - used to trigger app shutdown
//   - fx.DotGraph - contains a DOT language visualization of the app dependency graph
type App interface {
	Options
	LifeCycle

	// Run will start running the application and blocks until the app is shutdown.
	// It waits to receive a SIGINT or SIGTERM signal to shutdown the app.
	Run() error

	// Shutdown signals the app to shutdown. This method does not block, i.e., application shutdown occurs async.
	//
	// Shutdown can only be called after the app has been started - otherwise an error is returned.
	Shutdown() error
}

// LifeCycle defines the application lifecycle.
type LifeCycle interface {
	// Starting signals that the app is starting.
	// Closing the channel is the signal.
	Starting() <-chan struct{}
	// Started signals that the app has fully started
	Started() <-chan struct{}
	// Stopping signals that app is stopping.
	// The channel is closed after the stop signal is sent.
	Stopping() <-chan os.Signal
	// Done signals that the app has shutdown.
	// The channel is closed after the stop signal is sent.
	// If the app fails to startup, then the channel is simply closed, i.e., no stop signal will be sent on the channel.
	Done() <-chan os.Signal
}

// Options represent application options that were used to configure and build app.
type Options interface {
	// HostContext returns the context the app was built in
	HostContext() HostContext

	// Desc returns the app descriptor
	Desc() Desc

	// InstanceID returns the app unique instance ID
	InstanceID() InstanceID

	// StartTimeout returns the app start timeout. If the app takes longer than the specified timeout, then the app will
	// fail to run.
	StartTimeout() time.Duration
	// StopTimeout returns the app shutdown timeout. If the app takes longer than the specified timeout, then the app shutdown
	// will be aborted.
	StopTimeout() time.Duration

	// ConstructorTypes returns the registered constructor types
	ConstructorTypes() []reflect.Type
	// FuncTypes returns the registered function types
	FuncTypes() []reflect.Type
}

type app struct {
	hostCtx HostContext

	constructors []interface{}
	funcs        []interface{}

	startErrorHandlers, stopErrorHandlers []func(error)

	*fx.App
	fx.Shutdowner
	starting, started chan struct{}
	stopping, stopped chan os.Signal

	logger *zerolog.Logger
	// closes the app logger after the app is stopped
	closeLogger func() error
}

func (a *app) String() string {
	return fmt.Sprintf("App{%v, Environment: %s, StartTimeout: %s, StopTimeout: %s, Provide: %s, Invoke: %s, Err: %v}",
		a.hostCtx.Desc,
		a.hostCtx.Environment,
		a.StartTimeout(),
		a.StopTimeout(),
		funcTypes(a.constructors),
		funcTypes(a.funcs),
		a.Err(),
	)
}

func (a *app) HostContext() HostContext {
	return a.hostCtx
}

func (a *app) Desc() Desc {
	return a.hostCtx.Desc
}

func (a *app) InstanceID() InstanceID {
	return a.hostCtx.InstanceID
}

func (a *app) ConstructorTypes() []reflect.Type {
	return types(a.constructors)
}

func (a *app) FuncTypes() []reflect.Type {
	return types(a.funcs)
}

func (a *app) Run() error {
	select {
	case <-a.starting:
		return errors.New("app cannot be run again after it has already been started")
	default:
		// app has not been started yet
	}
	a.logAppStarting()

	startCtx, cancel := context.WithTimeout(context.Background(), a.StartTimeout())
	defer cancel()
	defer close(a.stopped)

	stopChan := a.App.Done()

	close(a.starting)
	startingTime := time.Now()
	if e := a.Start(startCtx); e != nil {
		return multierr.Append(a.handleStartError(e), a.closeLogger())
	}
	a.logAppStarted(time.Since(startingTime))
	close(a.started)

	// wait for the app to be signalled to stop
	return a.shutdown(<-stopChan)
}

func (a *app) shutdown(signal os.Signal) (err error) {
	a.stopping <- signal
	close(a.stopping)
	defer func() {
		a.stopped <- signal
	}()

	a.logAppStopping(signal)

	stopCtx, cancel := context.WithTimeout(context.Background(), a.StopTimeout())
	defer cancel()
	stoppingTime := time.Now()
	defer func() {
		a.logAppStopped(time.Since(stoppingTime))
		err = multierr.Append(err, a.closeLogger())
	}()
	if e := a.Stop(stopCtx); e != nil {
		return a.handleStopError(e)
	}
	return nil
}

func (a *app) handleStartError(err error) error {
	StartFailedEventID.NewLogEventer(a.logger, zerolog.ErrorLevel)(AppFailed{err}, "app start failed")
	for _, f := range a.startErrorHandlers {
		f(err)
	}
	return err
}

func (a *app) handleStopError(err error) error {
	StopFailedEventID.NewLogEventer(a.logger, zerolog.ErrorLevel)(AppFailed{err}, "app stop failed")
	for _, f := range a.stopErrorHandlers {
		f(err)
	}
	return err
}

func (a *app) Starting() <-chan struct{} {
	return a.starting
}

func (a *app) Started() <-chan struct{} {
	return a.started
}

func (a *app) Stopping() <-chan os.Signal {
	return a.stopping
}

func (a *app) Done() <-chan os.Signal {
	return a.stopped
}

func (a *app) Shutdown() error {
	select {
	case <-a.started:
		return a.Shutdowner.Shutdown()
	default:
		return errors.New("app can only be shutdown after it has started")
	}
}

func (a *app) logAppInitialized() {
	logEvent := InitializedEventID.NewLogEventer(a.logger, zerolog.InfoLevel)
	logEvent(AppInitialized{App: a}, "app initialized")
}

func (a *app) logAppStarting() {
	logEvent := StartingEventID.NewLogEventer(a.logger, zerolog.InfoLevel)
	logEvent(nil, "app starting")
}

func (a *app) logAppStarted(startupTime time.Duration) {
	logEvent := StartedEventID.NewLogEventer(a.logger, zerolog.InfoLevel)
	logEvent(AppStarted{startupTime}, "app started")
}

func (a *app) logAppStopping(signal os.Signal) {
	logEvent := StoppingEventID.NewLogEventer(a.logger, zerolog.InfoLevel)
	logEvent(AppStopping{signal}, "app stopping")
}

func (a *app) logAppStopped(shutdownDuration time.Duration) {
	logEvent := StoppedEventID.NewLogEventer(a.logger, zerolog.InfoLevel)
	logEvent(AppStopped{shutdownDuration}, "app stopped")
}
