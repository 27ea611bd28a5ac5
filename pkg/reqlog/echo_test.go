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
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/oysterpack/fxlog/pkg/reqlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newEcho(opts reqlog.Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(reqlog.Echo(opts))
	e.GET("/orders/:id", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Str("id", c.Param("id")).Msg("get order")
		return c.String(http.StatusOK, "order")
	})
	e.GET("/teapot", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("BOOM")
	})
	return e
}

func serveEcho(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestEcho(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		opts, buf := bufferedOptions()
		rec := serveEcho(newEcho(opts), "/orders/42")
		require.Equal(t, http.StatusOK, rec.Code)

		events := decodeLogEvents(t, buf)
		require.Len(t, events, 2)
		requestID := rec.Header().Get(reqlog.RequestIDHeader)
		assert.NotEmpty(t, requestID)
		assert.Equal(t, requestID, events[0].Str(reqlog.RequestIDProperty))

		event := events[1]
		assert.Equal(t, "Information", event.Str(logcfg.LevelField))
		assert.Equal(t, "/orders/42", event.Str(reqlog.RequestPathProperty))
		assert.Equal(t, float64(http.StatusOK), event[reqlog.StatusCodeProperty])
		assert.Regexp(t, messagePattern, event.Str(logcfg.MessageField))
	})

	t.Run("http error", func(t *testing.T) {
		opts, buf := bufferedOptions()
		rec := serveEcho(newEcho(opts), "/teapot")
		require.Equal(t, http.StatusTeapot, rec.Code)
		events := requestEvents(decodeLogEvents(t, buf))
		require.Len(t, events, 1)
		assert.Equal(t, float64(http.StatusTeapot), events[0][reqlog.StatusCodeProperty])
		// handler errors are logged at error level
		assert.Equal(t, "Error", events[0].Str(logcfg.LevelField))
	})

	t.Run("handler error", func(t *testing.T) {
		opts, buf := bufferedOptions()
		rec := serveEcho(newEcho(opts), "/fail")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		events := requestEvents(decodeLogEvents(t, buf))
		require.Len(t, events, 1)
		assert.Equal(t, float64(http.StatusInternalServerError), events[0][reqlog.StatusCodeProperty])
		assert.Equal(t, "BOOM", events[0].Str(logcfg.ErrorField))
		assert.Equal(t, "Error", events[0].Str(logcfg.LevelField))
	})
}
