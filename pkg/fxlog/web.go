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

package fxlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/labstack/echo/v4"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/oysterpack/fxlog/pkg/reqlog"
	zlog "github.com/rs/zerolog/log"
	"log"
	"net/http"
	"strings"
)

// UseRequestLogging logs each echo request, see reqlog.Echo
func UseRequestLogging(e *echo.Echo) (*echo.Echo, error) {
	if err := guard.NotNil(e, "app"); err != nil {
		return nil, err
	}
	e.Use(reqlog.Echo(reqlog.Options{}))
	return e, nil
}

// UseFiberRequestLogging logs each fiber request, see reqlog.Fiber
func UseFiberRequestLogging(app *fiber.App) (*fiber.App, error) {
	if err := guard.NotNil(app, "app"); err != nil {
		return nil, err
	}
	app.Use(reqlog.Fiber(reqlog.Options{}))
	return app, nil
}

// UseHTTPRequestLogging logs each request handled by the app HTTP server, see reqlog.Middleware
func UseHTTPRequestLogging(b fxapp.AppBuilder) (fxapp.AppBuilder, error) {
	if err := guard.NotNil(b, "builder"); err != nil {
		return nil, err
	}
	b.UseHTTPMiddleware(reqlog.Middleware(reqlog.Options{}))
	return b, nil
}

// UseLoggingStrategies routes the echo server error log through the process-wide logger. Events are tagged with the
// Environment and, if not blank, the SourceContext.
func UseLoggingStrategies(e *echo.Echo, env string, sourceContext string) (*echo.Echo, error) {
	if err := guard.First(guard.NotNil(e, "app"), guard.NotEmpty(env, "env")); err != nil {
		return nil, err
	}
	e.StdLogger = log.New(serverErrorLog{env: env, sourceContext: strings.TrimSpace(sourceContext)}, "", 0)
	return e, nil
}

// UseStandardLogging routes the HTTP server error log through the process-wide logger
func UseStandardLogging(srv *http.Server) (*http.Server, error) {
	if err := guard.NotNil(srv, "server"); err != nil {
		return nil, err
	}
	srv.ErrorLog = log.New(serverErrorLog{}, "", 0)
	return srv, nil
}

// serverErrorLog reads the process-wide logger on each write, in order to pick up the logger that is current when the
// error is reported.
type serverErrorLog struct {
	env           string
	sourceContext string
}

func (w serverErrorLog) Write(p []byte) (int, error) {
	ctx := zlog.Logger.With()
	if w.env != "" {
		ctx = ctx.Str(logcfg.EnvironmentProperty, w.env)
	}
	if w.sourceContext != "" {
		ctx = ctx.Str(logcfg.SourceContextProperty, w.sourceContext)
	}
	logger := ctx.Logger()
	logger.Error().
		Str(fxapp.EventTypeIDProperty, fxapp.HTTPServerError.String()).
		Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
