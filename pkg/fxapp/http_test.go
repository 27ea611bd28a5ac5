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

package fxapp_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/oysterpack/fxlog/pkg/fxapp"
	"github.com/oysterpack/fxlog/pkg/fxapptest"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"io"
	"net/http"
	"testing"
	"time"
)

func newTestHTTPServer() *http.Server {
	return &http.Server{
		Addr:              "127.0.0.1:0",
		ReadHeaderTimeout: time.Second,
	}
}

func TestHTTPServer(t *testing.T) {
	log := fxapptest.NewSyncLog()
	header := func(name string) fxapp.HTTPMiddleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Add("X-Middleware", name)
				next.ServeHTTP(w, req)
			})
		}
	}
	app, err := fxapp.NewBuilder(newDesc(t)).
		UseLogging(fxapptest.UseSyncLog(log)).
		UseHTTPMiddleware(header("a"), header("b")).
		Provide(
			fx.Annotated{
				Name:   "http.Server",
				Target: newTestHTTPServer,
			},
			func() fxapp.HTTPHandler {
				return fxapp.NewHTTPHandler("/hello", func(w http.ResponseWriter, req *http.Request) {
					fmt.Fprint(w, "hello")
				})
			},
		).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	errs := runApp(t, app)
	defer shutdownApp(t, app, errs)

	events := log.EventsOfType(fxapp.HTTPServerStarting)
	if len(events) != 1 {
		t.Fatalf("*** HTTP server starting event was not logged: %v", log)
	}
	addr := events[0].Dict(fxapp.HTTPServerStarting.String()).Str("Addr")
	t.Logf("HTTP server address: %s", addr)

	resp, err := http.Get(fmt.Sprintf("http://%s/hello", addr))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode != http.StatusOK:
		t.Errorf("*** status code did not match: %d", resp.StatusCode)
	case string(body) != "hello":
		t.Errorf("*** body did not match: %q", body)
	}
	if middleware := resp.Header.Values("X-Middleware"); len(middleware) != 2 || middleware[0] != "a" || middleware[1] != "b" {
		t.Errorf("*** middleware should be applied in the order registered: %v", middleware)
	}
}

func TestHTTPServer_DuplicateEndpoints(t *testing.T) {
	handler := func(w http.ResponseWriter, req *http.Request) {}
	_, err := fxapp.NewBuilder(newDesc(t)).
		UseLogging(fxapptest.UseSyncLog(fxapptest.NewSyncLog())).
		Provide(
			func() fxapp.HTTPHandler {
				return fxapp.NewHTTPHandler("/foo", handler)
			},
			fx.Annotated{
				Group: "HTTPHandler",
				Target: func() fxapp.HTTPEndpoint {
					return fxapp.HTTPEndpoint{Path: "/foo", Handler: handler}
				},
			},
		).
		Build()
	if err == nil {
		t.Error("*** app should have failed to build because of duplicate endpoint paths")
	}
}

func TestHTTPServer_AddressInUse(t *testing.T) {
	log := fxapptest.NewSyncLog()
	app, err := fxapp.NewBuilder(newDesc(t)).
		UseLogging(fxapptest.UseSyncLog(log)).
		Provide(
			fx.Annotated{
				Name:   "http.Server",
				Target: newTestHTTPServer,
			},
			func() fxapp.HTTPHandler {
				return fxapp.NewHTTPHandler("/foo", func(w http.ResponseWriter, req *http.Request) {})
			},
		).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	errs := runApp(t, app)
	defer shutdownApp(t, app, errs)

	addr := log.EventsOfType(fxapp.HTTPServerStarting)[0].Dict(fxapp.HTTPServerStarting.String()).Str("Addr")

	// a second app using the same address fails to start
	app2, err := fxapp.NewBuilder(newDesc(t)).
		UseLogging(fxapptest.UseSyncLog(fxapptest.NewSyncLog())).
		Provide(
			fx.Annotated{
				Name: "http.Server",
				Target: func() *http.Server {
					return &http.Server{Addr: addr}
				},
			},
			func() fxapp.HTTPHandler {
				return fxapp.NewHTTPHandler("/foo", func(w http.ResponseWriter, req *http.Request) {})
			},
		).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := app2.Run(); err == nil {
		t.Error("*** app should have failed to start because the address is in use")
	}
}

func TestNewHTTPServerErrorLog(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := zerolog.New(buf)
	errorLog := fxapp.NewHTTPServerErrorLog(&logger)
	errorLog.Printf("http: TLS handshake error from %s", "127.0.0.1:1234")

	var event map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("*** invalid log event: %v : %s", err, buf)
	}
	switch {
	case event[logcfg.LevelField] != "Error":
		t.Errorf("*** server errors should be logged at error level: %v", event)
	case event[fxapp.EventTypeIDProperty] != fxapp.HTTPServerError.String():
		t.Errorf("*** event type ID did not match: %v", event)
	case event[logcfg.MessageField] != "http: TLS handshake error from 127.0.0.1:1234":
		t.Errorf("*** message should be trimmed: %v", event)
	}
}
