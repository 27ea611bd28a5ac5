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
	"bytes"
	"fmt"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"io"
	"log"
	"os"
	"reflect"
	"time"
)

// LoggingConfigurer configures the app logger
type LoggingConfigurer func(ctx HostContext, config *logcfg.Configuration) error

// ServicesConfigurer registers services with the app container
type ServicesConfigurer func(ctx HostContext, services *Services) error

// AppBuilder is used to construct a new App instance.
type AppBuilder interface {
	Build() (App, error)

	SetStartTimeout(timeout time.Duration) AppBuilder
	SetStopTimeout(timeout time.Duration) AppBuilder

	// SetConfig sets the app configuration. It defaults to an empty configuration.
	SetConfig(config *viper.Viper) AppBuilder
	// SetEnvironment sets the environment name. It defaults to the APP12X_ENVIRONMENT env var, and if not set, then Production.
	SetEnvironment(env string) AppBuilder

	// UseLogging registers a function to configure the app logger. Configurers are applied in order on the same
	// logcfg.Configuration, which is used to create the app logger when the app is built. The logger is made the
	// process-wide logger and is closed when the app is stopped.
	//
	// If no configurer is registered, then the app logs compact JSON to stderr.
	UseLogging(configurers ...LoggingConfigurer) AppBuilder
	// ConfigureServices registers functions to register services with the app container
	ConfigureServices(configurers ...ServicesConfigurer) AppBuilder
	// UseHTTPMiddleware registers middleware for the app HTTP server
	UseHTTPMiddleware(middleware ...HTTPMiddleware) AppBuilder

	Provide(constructors ...interface{}) AppBuilder
	Invoke(funcs ...interface{}) AppBuilder

	HandleInvokeError(errorHandlers ...func(error)) AppBuilder
	HandleStartError(errorHandlers ...func(error)) AppBuilder
	HandleStopError(errorHandlers ...func(error)) AppBuilder
}

// NewBuilder constructs a new AppBuilder.
// The desc is optional. If nil, then the executable name is used as the app name.
func NewBuilder(desc Desc) AppBuilder {
	return &appBuilder{
		desc:         desc,
		startTimeout: 15 * time.Second,
		stopTimeout:  15 * time.Second,
	}
}

type appBuilder struct {
	desc Desc

	startTimeout time.Duration
	stopTimeout  time.Duration

	config      *viper.Viper
	environment string

	loggingConfigurers  []LoggingConfigurer
	servicesConfigurers []ServicesConfigurer
	httpMiddleware      httpMiddleware

	constructors        []interface{}
	funcs               []interface{}
	invokeErrorHandlers []func(error)
	startErrorHandlers  []func(error)
	stopErrorHandlers   []func(error)
}

func (a *appBuilder) String() string {
	return fmt.Sprintf("AppBuilder{%v, StartTimeout: %s, StopTimeout: %s, Provide: %s, Invoke: %s}",
		a.desc,
		a.startTimeout,
		a.stopTimeout,
		funcTypes(a.constructors),
		funcTypes(a.funcs),
	)
}

func funcTypes(funcs []interface{}) string {
	if len(funcs) == 0 {
		return "[]"
	}
	s := new(bytes.Buffer)
	s.WriteString("[")
	s.WriteString(reflect.TypeOf(funcs[0]).String())
	for i := 1; i < len(funcs); i++ {
		s.WriteString("|")
		s.WriteString(reflect.TypeOf(funcs[i]).String())
	}
	s.WriteString("]")
	return s.String()
}

func types(values []interface{}) []reflect.Type {
	if len(values) == 0 {
		return nil
	}
	valueTypes := make([]reflect.Type, 0, len(values))
	for _, value := range values {
		valueTypes = append(valueTypes, reflect.TypeOf(value))
	}

	return valueTypes
}

// Build tries to construct and initialize a new App instance.
// All of the app's functions are run as part of the app initialization phase.
func (a *appBuilder) Build() (App, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	hostCtx, err := a.hostContext()
	if err != nil {
		return nil, err
	}

	globals := saveGlobalLoggers()
	logger, err := a.buildLogger(hostCtx)
	if err != nil {
		return nil, err
	}

	services := NewServices()
	for _, configure := range a.servicesConfigurers {
		err = multierr.Append(err, configure(hostCtx, services))
	}
	if err != nil {
		globals.restore()
		return nil, multierr.Combine(err, services.cleanup(), logger.Close())
	}

	app := &app{
		hostCtx:      hostCtx,
		constructors: a.constructors,
		funcs:        a.funcs,

		startErrorHandlers: a.startErrorHandlers,
		stopErrorHandlers:  a.stopErrorHandlers,

		starting: make(chan struct{}),
		started:  make(chan struct{}),
		stopping: make(chan os.Signal, 1),
		stopped:  make(chan os.Signal, 1),

		logger:      logger.ForContext("fxapp"),
		closeLogger: logger.Close,
	}
	app.App = fx.New(
		fx.Supply(hostCtx),
		fx.Provide(
			func() Desc { return hostCtx.Desc },
			func() InstanceID { return hostCtx.InstanceID },
			func() *viper.Viper { return hostCtx.Config },
			func() httpMiddleware { return a.httpMiddleware },
			func() *logcfg.Logger { return logger },
			zerologLogger,
			loggerFactory,
			zapLogger,
		),
		fx.WithLogger(func() fxevent.Logger {
			return &fxLogger{logger: logger.ForContext("fx")}
		}),
		services.Options(),
		fx.StartTimeout(a.startTimeout),
		fx.StopTimeout(a.stopTimeout),
		fx.Options(a.buildOptions()...),
		fx.Invoke(runHTTPServer),
		fx.Populate(&app.Shutdowner),
	)

	if err := app.Err(); err != nil {
		globals.restore()
		return nil, multierr.Combine(err, services.cleanup(), logger.Close())
	}

	app.logAppInitialized()
	return app, nil
}

// globalLoggers is the process-wide logging state, which is restored when the app fails to build
type globalLoggers struct {
	logger zerolog.Logger
	out    io.Writer
	flags  int
	prefix string
}

func saveGlobalLoggers() globalLoggers {
	return globalLoggers{
		logger: zlog.Logger,
		out:    log.Writer(),
		flags:  log.Flags(),
		prefix: log.Prefix(),
	}
}

func (g globalLoggers) restore() {
	zlog.Logger = g.logger
	log.SetOutput(g.out)
	log.SetFlags(g.flags)
	log.SetPrefix(g.prefix)
}

func (a *appBuilder) validate() error {
	if a.desc != nil {
		return a.desc.Validate()
	}
	return nil
}

func (a *appBuilder) hostContext() (HostContext, error) {
	env := a.environment
	if env == "" {
		var err error
		if env, err = LoadEnvironment(); err != nil {
			return HostContext{}, err
		}
	}
	config := a.config
	if config == nil {
		config = viper.New()
	}
	return HostContext{
		Desc:        a.desc,
		InstanceID:  NewInstanceID(),
		Environment: env,
		Config:      config,
	}, nil
}

func (a *appBuilder) buildLogger(hostCtx HostContext) (*logcfg.Logger, error) {
	if len(a.loggingConfigurers) == 0 {
		return logcfg.New().
			Enrich(logcfg.WithApplicationName(hostCtx.AppName())).
			WriteTo(logcfg.Writer(os.Stderr)).
			CreateLogger()
	}

	config := logcfg.New()
	var err error
	for _, configure := range a.loggingConfigurers {
		err = multierr.Append(err, configure(hostCtx, config))
	}
	if err != nil {
		return nil, err
	}
	logger, err := config.CreateLogger()
	if err != nil {
		return nil, err
	}
	logger.SetGlobal()
	return logger, nil
}

func (a *appBuilder) buildOptions() []fx.Option {
	compOptions := make([]fx.Option, 0, len(a.constructors)+len(a.funcs)+len(a.invokeErrorHandlers))
	for _, f := range a.constructors {
		compOptions = append(compOptions, fx.Provide(f))
	}
	for _, f := range a.funcs {
		compOptions = append(compOptions, fx.Invoke(f))
	}
	for _, f := range a.invokeErrorHandlers {
		compOptions = append(compOptions, fx.ErrorHook(errorHandler(f)))
	}
	return compOptions
}

func zerologLogger(logger *logcfg.Logger) *zerolog.Logger {
	return logger.Zerolog()
}

func loggerFactory(logger *logcfg.Logger) logcfg.LoggerFactory {
	return logger
}

func zapLogger(logger *logcfg.Logger) *zap.Logger {
	return logger.Zap()
}

// used to implement the fx.ErrorHandler interface
type errorHandler func(err error)

func (f errorHandler) HandleError(err error) {
	f(err)
}

func (a *appBuilder) SetStartTimeout(timeout time.Duration) AppBuilder {
	a.startTimeout = timeout
	return a
}

func (a *appBuilder) SetStopTimeout(timeout time.Duration) AppBuilder {
	a.stopTimeout = timeout
	return a
}

func (a *appBuilder) SetConfig(config *viper.Viper) AppBuilder {
	a.config = config
	return a
}

func (a *appBuilder) SetEnvironment(env string) AppBuilder {
	a.environment = env
	return a
}

func (a *appBuilder) UseLogging(configurers ...LoggingConfigurer) AppBuilder {
	a.loggingConfigurers = append(a.loggingConfigurers, configurers...)
	return a
}

func (a *appBuilder) ConfigureServices(configurers ...ServicesConfigurer) AppBuilder {
	a.servicesConfigurers = append(a.servicesConfigurers, configurers...)
	return a
}

func (a *appBuilder) UseHTTPMiddleware(middleware ...HTTPMiddleware) AppBuilder {
	a.httpMiddleware = append(a.httpMiddleware, middleware...)
	return a
}

func (a *appBuilder) Provide(constructors ...interface{}) AppBuilder {
	a.constructors = append(a.constructors, constructors...)
	return a
}

func (a *appBuilder) Invoke(funcs ...interface{}) AppBuilder {
	a.funcs = append(a.funcs, funcs...)
	return a
}

func (a *appBuilder) HandleInvokeError(errorHandlers ...func(error)) AppBuilder {
	a.invokeErrorHandlers = append(a.invokeErrorHandlers, errorHandlers...)
	return a
}

func (a *appBuilder) HandleStartError(errorHandlers ...func(error)) AppBuilder {
	a.startErrorHandlers = append(a.startErrorHandlers, errorHandlers...)
	return a
}

func (a *appBuilder) HandleStopError(errorHandlers ...func(error)) AppBuilder {
	a.stopErrorHandlers = append(a.stopErrorHandlers, errorHandlers...)
	return a
}
