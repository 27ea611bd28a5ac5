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

package reqlog

import (
	"errors"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

// Echo returns echo request logging middleware
func Echo(opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if opts.skip(req.URL.Path) {
				return next(c)
			}

			start := time.Now()
			requestID := RequestID(req.Header.Get(RequestIDHeader))
			c.Response().Header().Set(RequestIDHeader, requestID)
			logger := opts.requestLogger(requestID)
			c.SetRequest(req.WithContext(withRequest(req.Context(), logger, requestID)))

			e := next(c)
			opts.log(&logger, &Request{
				Method:    req.Method,
				Path:      req.URL.Path,
				Status:    echoStatus(c, e),
				Elapsed:   time.Since(start),
				RequestID: requestID,
				Err:       e,
			})
			return e
		}
	}
}

// echoStatus returns the status that the echo error handler will respond with, if the handler failed and the response
// was not committed yet
func echoStatus(c echo.Context, e error) int {
	if e == nil || c.Response().Committed {
		return c.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(e, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
