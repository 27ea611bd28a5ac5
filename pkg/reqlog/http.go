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
	"fmt"
	"github.com/felixge/httpsnoop"
	"net/http"
	"time"
)

// Middleware returns net/http request logging middleware
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID := RequestID(r.Header.Get(RequestIDHeader))
			w.Header().Set(RequestIDHeader, requestID)
			logger := opts.requestLogger(requestID)
			r = r.WithContext(withRequest(r.Context(), logger, requestID))

			defer func() {
				if p := recover(); p != nil {
					opts.log(&logger, &Request{
						Method:    r.Method,
						Path:      r.URL.Path,
						Status:    http.StatusInternalServerError,
						Elapsed:   time.Since(start),
						RequestID: requestID,
						Err:       fmt.Errorf("panic: %v", p),
					})
					panic(p)
				}
			}()

			metrics := httpsnoop.CaptureMetrics(next, w, r)
			opts.log(&logger, &Request{
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    metrics.Code,
				Elapsed:   metrics.Duration,
				RequestID: requestID,
			})
		})
	}
}
