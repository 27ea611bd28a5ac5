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
	"github.com/gofiber/fiber/v2"
	"time"
)

// Fiber returns fiber request logging middleware
func Fiber(opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if opts.skip(path) {
			return c.Next()
		}

		start := time.Now()
		requestID := RequestID(c.Get(RequestIDHeader))
		c.Set(RequestIDHeader, requestID)
		logger := opts.requestLogger(requestID)
		c.SetUserContext(withRequest(c.UserContext(), logger, requestID))

		e := c.Next()
		opts.log(&logger, &Request{
			Method:    c.Method(),
			Path:      path,
			Status:    fiberStatus(c, e),
			Elapsed:   time.Since(start),
			RequestID: requestID,
			Err:       e,
		})
		return e
	}
}

// fiberStatus returns the status that the fiber error handler will respond with, if the handler failed
func fiberStatus(c *fiber.Ctx, e error) int {
	if e == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(e, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
