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
	"fmt"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"log"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"
)

// HTTPHandler is used to group HTTPEndpoint(s) together.
// The HTTPEndpoint(s) are automatically registered with the app's HTTP server.
type HTTPHandler struct {
	fx.Out

	HTTPEndpoint `group:"HTTPHandler"`
}

// NewHTTPHandler constructs a new HTTPHandler
func NewHTTPHandler(path string, handler func(http.ResponseWriter, *http.Request)) HTTPHandler {
	return HTTPHandler{
		HTTPEndpoint: HTTPEndpoint{
			Path:    path,
			Handler: handler,
		},
	}
}

// HTTPEndpoint maps an HTTP handler to an HTTP path
type HTTPEndpoint struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

// HTTPMiddleware wraps the app HTTP server handler. Middleware is applied in the order it was registered, i.e., the
// first registered middleware is the outermost.
type HTTPMiddleware func(http.Handler) http.Handler

type httpMiddleware []HTTPMiddleware

// httpServerOpts is used by the app to configure and run an HTTP server only if HTTPEndpoint(s) are discovered, i.e.,
// registered with the app via dependency injection.
//
// An http.Server can be provided when building the app. If an http.Server is not found, then the app creates one with the
// following options:
//   - Addr:              ":8008",
//   - ReadHeaderTimeout: time.Second,
//   - MaxHeaderBytes:    1024,
type httpServerOpts struct {
	fx.In

	Server *http.Server `name:"http.Server" optional:"true"`

	Endpoints  []HTTPEndpoint `group:"HTTPHandler"`
	Middleware httpMiddleware `optional:"true"`
}

// validate runs the following checks:
//   - endpoint paths are unique
//   - handler funcs are not nil
func (opts httpServerOpts) validate() error {
	paths := make(map[string]bool, len(opts.Endpoints))
	for _, endpoint := range opts.Endpoints {
		if paths[endpoint.Path] {
			return fmt.Errorf("duplicate HTTP endpoint path: %v", endpoint.Path)
		}
		if endpoint.Handler == nil {
			return fmt.Errorf("http handler func is nil for: %v", endpoint.Path)
		}
		paths[endpoint.Path] = true
	}

	return nil
}

func (opts httpServerOpts) httpServerInfo(addr string) httpServerInfo {
	endpoints := make([]string, 0, len(opts.Endpoints))
	for _, endpoint := range opts.Endpoints {
		endpoints = append(endpoints, endpoint.Path)
	}
	sort.Strings(endpoints)

	return httpServerInfo{
		addr:      addr,
		endpoints: endpoints,
	}
}

func (opts httpServerOpts) handler() http.Handler {
	serveMux := http.NewServeMux()
	for _, endpoint := range opts.Endpoints {
		serveMux.HandleFunc(endpoint.Path, endpoint.Handler)
	}
	var handler http.Handler = serveMux
	for i := len(opts.Middleware) - 1; i >= 0; i-- {
		handler = opts.Middleware[i](handler)
	}
	return handler
}

func runHTTPServer(opts httpServerOpts, logger *zerolog.Logger, lc fx.Lifecycle) error {
	if len(opts.Endpoints) == 0 {
		return nil
	}

	if err := opts.validate(); err != nil {
		return err
	}

	if opts.Server == nil {
		opts.Server = newHTTPServerWithDefaultOpts()
	}
	opts.Server.Handler = opts.handler()
	if opts.Server.ErrorLog == nil {
		opts.Server.ErrorLog = NewHTTPServerErrorLog(logger)
	}

	logServerFailed := HTTPServerError.NewLogEventer(logger, zerolog.ErrorLevel)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// listen before returning, in order to fail the app start if the address is unavailable
			listener, err := net.Listen("tcp", opts.Server.Addr)
			if err != nil {
				return err
			}
			HTTPServerStarting.NewLogEventer(logger, zerolog.InfoLevel)(opts.httpServerInfo(listener.Addr().String()), "starting HTTP server")
			go func() {
				if err := opts.Server.Serve(listener); err != http.ErrServerClosed {
					logServerFailed(AppFailed{err}, "HTTP server has exited with an error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return opts.Server.Shutdown(ctx)
		},
	})

	return nil
}

func newHTTPServerWithDefaultOpts() *http.Server {
	return &http.Server{
		Addr:              ":8008",
		ReadHeaderTimeout: time.Second,
		MaxHeaderBytes:    1024,
	}
}

// NewHTTPServerErrorLog returns a std logger that logs HTTP server errors to the zerolog logger, e.g., used as the
// http.Server.ErrorLog.
func NewHTTPServerErrorLog(logger *zerolog.Logger) *log.Logger {
	return log.New(httpServerErrorLog(HTTPServerError.NewLogEventer(logger, zerolog.ErrorLevel)), "", 0)
}

// HTTP server related events
const (
	// HTTPServerError indicates an error occurred while the HTTP server was handling a request or serving.
	HTTPServerError EventTypeID = "01DEDRH8A9X3SCSJRCJ4PM7749"

	HTTPServerStarting EventTypeID = "01DEFM9FFSH58ZGNPSR7Z4C3G2"
)

type httpServerErrorLog LogEventer

func (log httpServerErrorLog) Write(p []byte) (int, error) {
	log(nil, strings.TrimSpace(string(p)))
	return len(p), nil
}

type httpServerInfo struct {
	addr      string
	endpoints []string
}

func (info httpServerInfo) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("Addr", info.addr).
		Strs("Endpoints", info.endpoints)
}
