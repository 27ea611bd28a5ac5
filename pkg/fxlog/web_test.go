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

package fxlog_test

import (
	"github.com/gofiber/fiber/v2"
	"github.com/labstack/echo/v4"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/fxlog"
	"github.com/oysterpack/fxlog/pkg/guard"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/oysterpack/fxlog/pkg/reqlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUseRequestLogging(t *testing.T) {
	e, err := fxlog.UseRequestLogging(nil)
	assert.Nil(t, e)
	assert.True(t, guard.IsArgumentErr(err))

	buf := captureGlobalLogger(t)
	app := echo.New()
	e, err = fxlog.UseRequestLogging(app)
	require.NoError(t, err)
	assert.Same(t, app, e)

	app.GET("/hello", func(c echo.Context) error {
		return c.String(http.StatusOK, "hello")
	})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	events := decodeLogEvents(t, buf.Bytes())
	require.Len(t, events, 1)
	assert.Equal(t, reqlog.SourceContext, events[0].Str(logcfg.SourceContextProperty))
	assert.Equal(t, "/hello", events[0].Str(reqlog.RequestPathProperty))
	assert.Equal(t, rec.Header().Get(reqlog.RequestIDHeader), events[0].Str(reqlog.RequestIDProperty))
}

func TestUseFiberRequestLogging(t *testing.T) {
	app, err := fxlog.UseFiberRequestLogging(nil)
	assert.Nil(t, app)
	assert.True(t, guard.IsArgumentErr(err))

	buf := captureGlobalLogger(t)
	fiberApp := fiber.New()
	app, err = fxlog.UseFiberRequestLogging(fiberApp)
	require.NoError(t, err)
	assert.Same(t, fiberApp, app)

	app.Get("/hello", func(c *fiber.Ctx) error {
		return c.SendString("hello")
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hello", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	events := decodeLogEvents(t, buf.Bytes())
	require.Len(t, events, 1)
	assert.Equal(t, "/hello", events[0].Str(reqlog.RequestPathProperty))
}

func TestUseHTTPRequestLogging(t *testing.T) {
	b, err := fxlog.UseHTTPRequestLogging(nil)
	assert.Nil(t, b)
	assert.True(t, guard.IsArgumentErr(err))

	builder := fxapp.NewBuilder(newDesc(t))
	b, err = fxlog.UseHTTPRequestLogging(builder)
	require.NoError(t, err)
	assert.Same(t, builder, b)
}

func TestUseLoggingStrategies(t *testing.T) {
	e, err := fxlog.UseLoggingStrategies(nil, fxapp.Development, "")
	assert.Nil(t, e)
	assert.True(t, guard.IsArgumentErr(err))

	e, err = fxlog.UseLoggingStrategies(echo.New(), " ", "")
	assert.Nil(t, e)
	assert.True(t, guard.IsArgumentErr(err))
	assert.Contains(t, err.Error(), "env")

	buf := captureGlobalLogger(t)
	app := echo.New()
	e, err = fxlog.UseLoggingStrategies(app, fxapp.Development, "web")
	require.NoError(t, err)
	assert.Same(t, app, e)

	app.StdLogger.Println("http: TLS handshake error")
	events := decodeLogEvents(t, buf.Bytes())
	require.Len(t, events, 1)
	assert.Equal(t, fxapp.Development, events[0].Str(logcfg.EnvironmentProperty))
	assert.Equal(t, "web", events[0].Str(logcfg.SourceContextProperty))
	assert.Equal(t, fxapp.HTTPServerError.String(), events[0].Str(fxapp.EventTypeIDProperty))
	assert.Equal(t, "http: TLS handshake error", events[0].Str(logcfg.MessageField))
}

func TestUseStandardLogging(t *testing.T) {
	srv, err := fxlog.UseStandardLogging(nil)
	assert.Nil(t, srv)
	assert.True(t, guard.IsArgumentErr(err))

	buf := captureGlobalLogger(t)
	server := &http.Server{}
	srv, err = fxlog.UseStandardLogging(server)
	require.NoError(t, err)
	assert.Same(t, server, srv)
	require.NotNil(t, server.ErrorLog)

	server.ErrorLog.Print("http: Accept error")
	events := decodeLogEvents(t, buf.Bytes())
	require.Len(t, events, 1)
	assert.Equal(t, "http: Accept error", events[0].Str(logcfg.MessageField))
	assert.False(t, events[0].Has(logcfg.EnvironmentProperty))
}
