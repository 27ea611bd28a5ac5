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
	"context"
	"github.com/oysterpack/fxlog/pkg/logcfg"
	"github.com/oysterpack/fxlog/pkg/reqlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestDefaultLevel(t *testing.T) {
	cases := []struct {
		req   reqlog.Request
		level zerolog.Level
	}{
		{reqlog.Request{Status: 200}, zerolog.InfoLevel},
		{reqlog.Request{Status: 404}, zerolog.InfoLevel},
		{reqlog.Request{Status: 499}, zerolog.InfoLevel},
		{reqlog.Request{Status: 500}, zerolog.ErrorLevel},
		{reqlog.Request{Status: 503}, zerolog.ErrorLevel},
		{reqlog.Request{Status: 400, Err: context.Canceled}, zerolog.ErrorLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, reqlog.DefaultLevel(&c.req), "%+v", c.req)
	}
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc-123", reqlog.RequestID(" abc-123 "))
	id1, id2 := reqlog.RequestID(""), reqlog.RequestID("")
	assert.Len(t, id1, 36)
	assert.NotEqual(t, id1, id2)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, reqlog.RequestIDFromContext(context.Background()))
	ctx := reqlog.ContextWithRequestID(context.Background(), "r-1")
	assert.Equal(t, "r-1", reqlog.RequestIDFromContext(ctx))
	assert.Empty(t, logcfg.Properties(ctx), "request id is not a log context property")
}

func TestOptions_GetLevel(t *testing.T) {
	opts, buf := bufferedOptions()
	opts.GetLevel = func(req *reqlog.Request) zerolog.Level {
		if req.Elapsed > time.Hour {
			return zerolog.ErrorLevel
		}
		return zerolog.DebugLevel
	}
	serveHTTP(t, opts, "/ping", 200)
	events := requestEvents(decodeLogEvents(t, buf))
	if assert.Len(t, events, 1) {
		assert.Equal(t, "Debug", events[0].Str(logcfg.LevelField))
	}
}
