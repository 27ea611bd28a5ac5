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
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"strings"
	"time"
)

// SourceContext is logged as the request event SourceContext
const SourceContext = "reqlog"

// RequestIDHeader is the request and response header used to carry the request id
const RequestIDHeader = "X-Request-Id"

// request event property names
const (
	RequestIDProperty     = "RequestId"
	RequestMethodProperty = "RequestMethod"
	RequestPathProperty   = "RequestPath"
	StatusCodeProperty    = "StatusCode"
	ElapsedProperty       = "Elapsed"
)

// Request is the request summary that is logged
type Request struct {
	Method    string
	Path      string
	Status    int
	Elapsed   time.Duration
	RequestID string
	// Err is the error returned by the handler
	Err error
}

// Options are used to configure the request logging middleware
type Options struct {
	// Logger returns the base logger. It defaults to the process-wide logger, which is read per request.
	Logger func() *zerolog.Logger
	// GetLevel returns the event level. It defaults to DefaultLevel.
	GetLevel func(req *Request) zerolog.Level
	// SkipPaths are path prefixes that are not logged, e.g., health checks
	SkipPaths []string
}

// DefaultLevel returns error level for server errors and handler errors, and info level otherwise
func DefaultLevel(req *Request) zerolog.Level {
	if req.Status >= 500 || req.Err != nil {
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// RequestID returns the header value if it is set, otherwise a new random UUID
func RequestID(header string) string {
	if header = strings.TrimSpace(header); header != "" {
		return header
	}
	return uuid.New().String()
}

type requestIDKey struct{}

// RequestIDFromContext returns the request id carried by the request context
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ContextWithRequestID returns a context that carries the request id
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func (o *Options) skip(path string) bool {
	for _, prefix := range o.SkipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// requestLogger returns the base logger tagged with the request id
func (o *Options) requestLogger(requestID string) zerolog.Logger {
	var base zerolog.Logger
	if o.Logger != nil {
		base = *o.Logger()
	} else {
		base = log.Logger
	}
	return base.With().Str(RequestIDProperty, requestID).Logger()
}

// withRequest stores the request logger and request id. The request id is not pushed as a log context property
// because the request logger already carries it.
func withRequest(ctx context.Context, logger zerolog.Logger, requestID string) context.Context {
	return logger.WithContext(ContextWithRequestID(ctx, requestID))
}

func (o *Options) level(req *Request) zerolog.Level {
	if o.GetLevel != nil {
		return o.GetLevel(req)
	}
	return DefaultLevel(req)
}

func (o *Options) log(logger *zerolog.Logger, req *Request) {
	event := logger.WithLevel(o.level(req))
	if !event.Enabled() {
		return
	}
	if req.Err != nil {
		event.Err(req.Err)
	}
	elapsed := float64(req.Elapsed) / float64(time.Millisecond)
	event.
		Str(logcfg.SourceContextProperty, SourceContext).
		Str(RequestMethodProperty, req.Method).
		Str(RequestPathProperty, req.Path).
		Int(StatusCodeProperty, req.Status).
		Float64(ElapsedProperty, elapsed).
		Msg(fmt.Sprintf("HTTP %s %s responded %d in %.4f ms", req.Method, req.Path, req.Status, elapsed))
}
